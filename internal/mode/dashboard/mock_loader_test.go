package dashboard

import (
	"github.com/stretchr/testify/mock"

	"github.com/applytrack/applytrack/internal/fixtures"
)

// mockLoader is a test mock for Loader.
type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(dir string) (*fixtures.Dataset, error) {
	args := m.Called(dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fixtures.Dataset), args.Error(1)
}

func (m *mockLoader) Invalidate(dir string) {
	m.Called(dir)
}
