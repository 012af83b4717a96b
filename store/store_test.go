package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/penguince/career-survey/config"
	"github.com/penguince/career-survey/database"
	"github.com/penguince/career-survey/model"
	"github.com/penguince/career-survey/store"
)

// openTestDB runs the real open path so migrations and the foreign key
// pragma are active, like in production.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "store_test.sqlite")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestSurvey(t *testing.T, db *sql.DB, title string) model.Survey {
	t.Helper()

	created, err := store.CreateSurvey(context.Background(), db, model.Survey{
		Title:     title,
		CreatedBy: "penguince",
		Questions: []model.Question{
			{Text: "What field are you in?", Type: model.TypeText},
			{Text: "Do you have a resume?", Type: model.TypeMultipleChoice, Options: []byte(`["Yes","No"]`), Required: true},
			{Text: "How confident are you?", Type: model.TypeRange, Options: []byte(`{"min":0,"max":10,"labels":["Low","High"]}`)},
		},
	})
	require.NoError(t, err)

	// reload to get question ids
	survey, err := store.GetSurvey(context.Background(), db, created.ID)
	require.NoError(t, err)
	return survey
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
