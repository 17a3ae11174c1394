package userline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sps-backend/internal/database"
	"sps-backend/internal/models"
	"sps-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = testutil.NewDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.SendStatus(code)
		},
	})
	app.Get("/api/user-lines", ListAssignmentsHandler())
	app.Post("/api/user-lines", AssignLinesHandler())
	app.Delete("/api/user-lines", RemoveAssignmentHandler())
	return app
}

func seedUserAndLines(t *testing.T) (models.User, []models.Line) {
	t.Helper()

	u := models.User{Username: "operator", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, database.DB.Create(&u).Error)

	lines := []models.Line{
		{Name: "F400", Slug: "f400"},
		{Name: "MC Set", Slug: "mc-set"},
		{Name: "Okken", Slug: "okken"},
	}
	for i := range lines {
		require.NoError(t, database.DB.Create(&lines[i]).Error)
	}
	return u, lines
}

func postAssignments(t *testing.T, app *fiber.App, userID uint, lineIDs []uint) *http.Response {
	t.Helper()

	body, err := json.Marshal(AssignRequest{UserID: userID, LineIDs: lineIDs})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/user-lines", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAssignReplacesAllAssignments(t *testing.T) {
	app := newApp(t)
	u, lines := seedUserAndLines(t)

	resp := postAssignments(t, app, u.ID, []uint{lines[0].ID, lines[1].ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// İkinci istek eski atamaları birleştirmez, toptan değiştirir
	resp = postAssignments(t, app, u.ID, []uint{lines[2].ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result []AssignmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result, 1)
	assert.Equal(t, lines[2].ID, result[0].LineID)
	assert.Equal(t, "Okken", result[0].Line)
}

func TestAssignRollsBackOnUnknownLine(t *testing.T) {
	app := newApp(t)
	u, lines := seedUserAndLines(t)

	resp := postAssignments(t, app, u.ID, []uint{lines[0].ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bilinmeyen hat tüm isteği geri alır, mevcut atamalar korunur
	resp = postAssignments(t, app, u.ID, []uint{lines[1].ID, 999})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var count int64
	database.DB.Model(&models.UserLine{}).Where("user_id = ?", u.ID).Count(&count)
	require.EqualValues(t, 1, count)

	var remaining models.UserLine
	require.NoError(t, database.DB.Where("user_id = ?", u.ID).First(&remaining).Error)
	assert.Equal(t, lines[0].ID, remaining.LineID)
}

func TestAssignUnknownUser(t *testing.T) {
	app := newApp(t)
	_, lines := seedUserAndLines(t)

	resp := postAssignments(t, app, 999, []uint{lines[0].ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveAssignment(t *testing.T) {
	app := newApp(t)
	u, lines := seedUserAndLines(t)

	require.NoError(t, database.DB.Create(&models.UserLine{UserID: u.ID, LineID: lines[0].ID}).Error)

	url := fmt.Sprintf("/api/user-lines?userId=%d&lineId=%d", u.ID, lines[0].ID)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, url, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Aynı atamayı ikinci kez kaldırmak 404 döner
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, url, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
