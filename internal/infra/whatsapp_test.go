package infra

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"briqtrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWhatsAppClient(baseURL string) *WhatsAppClient {
	c := NewWhatsAppClient(&config.Config{
		TwilioAccountSID:     "AC_test",
		TwilioAuthToken:      "secret",
		TwilioWhatsAppNumber: "whatsapp:+14155238886",
		OwnerWhatsApp:        "whatsapp:+919876543210",
	})
	c.SetBaseURL(baseURL)
	return c
}

func TestSendPostsTwilioForm(t *testing.T) {
	var gotPath, gotBody, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotBody = r.PostForm.Get("Body")
		gotTo = r.PostForm.Get("To")

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC_test", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sid":"SM123","status":"queued"}`)
	}))
	defer srv.Close()

	client := testWhatsAppClient(srv.URL)
	msg := "Low Stock Alert!\nMaterial: Cement\nRemaining Quantity: 90"
	require.NoError(t, client.Send(context.Background(), msg))

	assert.Equal(t, "/2010-04-01/Accounts/AC_test/Messages.json", gotPath)
	assert.Equal(t, msg, gotBody)
	assert.Equal(t, "whatsapp:+919876543210", gotTo)
}

func TestSendSurfacesTwilioErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sid":"SM124","status":"failed","error_code":63016,"error_message":"template required"}`)
	}))
	defer srv.Close()

	err := testWhatsAppClient(srv.URL).Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "63016")
}

func TestSendRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := testWhatsAppClient(srv.URL).Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSendWithoutCredentialsFailsFast(t *testing.T) {
	client := NewWhatsAppClient(&config.Config{})
	err := client.Send(context.Background(), "hello")
	require.Error(t, err)
}
