package query

import (
	"context"
	"testing"

	"github.com/eaglebank/signup-service/shared/cqrs"
	"github.com/eaglebank/signup-service/shared/models"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	ids []string
}

func (m *mockReader) GetByID(_ context.Context, id string) (*models.ProvisionedUserView, error) {
	m.ids = append(m.ids, id)
	return &models.ProvisionedUserView{ID: id}, nil
}

func TestGetProvisionedUser(t *testing.T) {
	reader := &mockReader{}
	view, err := NewUserQueryService(reader).GetProvisionedUser(context.Background(), cqrs.GetProvisionedUserQuery{UserID: "usr-001"})
	require.NoError(t, err)
	require.Equal(t, "usr-001", view.ID)
	require.Equal(t, []string{"usr-001"}, reader.ids)
}
