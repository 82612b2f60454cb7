package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/gridpoint/interconnect/internal/statushistory/domain"
	"github.com/gridpoint/interconnect/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entry{}))
	return db
}

func TestAppendAndListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	appID := node.Generate()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	transitions := []struct {
		from workflow.Status
		to   workflow.Status
	}{
		{workflow.StatusSiteSelection, workflow.StatusSubmitted},
		{workflow.StatusSubmitted, workflow.StatusAgreementApproved},
		{workflow.StatusAgreementApproved, workflow.StatusConstruction},
	}
	for i, tr := range transitions {
		entry := domain.Entry{
			ID:            node.Generate(),
			ApplicationID: appID,
			OldStatus:     tr.from,
			NewStatus:     tr.to,
			ChangedAt:     base.Add(time.Duration(i) * time.Hour),
			Notes:         fmt.Sprintf("note %d", i),
			ChangedBy:     "admin",
		}
		require.NoError(t, repo.Append(ctx, db, &entry))
	}

	// an entry for a different application must not leak into the list
	other := domain.Entry{
		ID:            node.Generate(),
		ApplicationID: node.Generate(),
		OldStatus:     workflow.StatusSiteSelection,
		NewStatus:     workflow.StatusSubmitted,
		ChangedAt:     base,
	}
	require.NoError(t, repo.Append(ctx, db, &other))

	entries, err := repo.ListByApplication(ctx, db, appID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, workflow.StatusConstruction, entries[0].NewStatus)
	assert.Equal(t, workflow.StatusAgreementApproved, entries[1].NewStatus)
	assert.Equal(t, workflow.StatusSubmitted, entries[2].NewStatus)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].ChangedAt.After(entries[i-1].ChangedAt))
	}
}

func TestListTiesBreakOnID(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	appID := node.Generate()
	at := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	first := domain.Entry{ID: node.Generate(), ApplicationID: appID, OldStatus: workflow.StatusSiteSelection, NewStatus: workflow.StatusSubmitted, ChangedAt: at}
	second := domain.Entry{ID: node.Generate(), ApplicationID: appID, OldStatus: workflow.StatusSubmitted, NewStatus: workflow.StatusAgreementApproved, ChangedAt: at}
	require.NoError(t, repo.Append(ctx, db, &first))
	require.NoError(t, repo.Append(ctx, db, &second))

	entries, err := repo.ListByApplication(ctx, db, appID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestDeleteByApplication(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	appID := node.Generate()
	keepID := node.Generate()
	for _, id := range []snowflake.ID{appID, keepID} {
		entry := domain.Entry{
			ID:            node.Generate(),
			ApplicationID: id,
			OldStatus:     workflow.StatusSiteSelection,
			NewStatus:     workflow.StatusSubmitted,
			ChangedAt:     time.Now().UTC(),
		}
		require.NoError(t, repo.Append(ctx, db, &entry))
	}

	require.NoError(t, repo.DeleteByApplication(ctx, db, appID))

	deleted, err := repo.ListByApplication(ctx, db, appID)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	kept, err := repo.ListByApplication(ctx, db, keepID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
