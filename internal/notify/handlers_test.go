package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcastHandlerQueuesTask(t *testing.T) {
	client := &stubEnqueuer{}
	h := &Handler{Client: client}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/emails/broadcast",
		strings.NewReader(`{"subject":"Ouverture de la saison","body":"<p>On vous attend !</p>"}`))
	rec := httptest.NewRecorder()
	h.Broadcast(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, client.tasks, 1)
	require.Equal(t, TypeBroadcastEmail, client.tasks[0].Type())
}

func TestBroadcastHandlerRejectsEmptySubject(t *testing.T) {
	h := &Handler{Client: &stubEnqueuer{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/emails/broadcast",
		strings.NewReader(`{"subject":"  ","body":"hello"}`))
	rec := httptest.NewRecorder()
	h.Broadcast(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
