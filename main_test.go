package main

import (
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServer_Routes(t *testing.T) {
	e := newServer(&app{})

	var got []string
	for _, r := range e.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	sort.Strings(got)

	for _, want := range []string{
		http.MethodGet + " /health",
		http.MethodGet + " /api/v1/bookings/:id/contract",
		http.MethodPost + " /api/v1/bookings/:id/contract",
		http.MethodGet + " /api/v1/bookings/:id/contract/pdf",
		http.MethodGet + " /api/v1/bookings/:id/payments",
		http.MethodPost + " /api/v1/bookings/:id/payments",
		http.MethodPost + " /api/v1/bookings/:id/payments/schedule",
		http.MethodPatch + " /api/v1/payments/:id/paid",
		http.MethodDelete + " /api/v1/payments/:id",
		http.MethodGet + " /api/v1/bookings/:id/receipt",
		http.MethodGet + " /api/v1/reports/receivables",
		http.MethodGet + " /api/v1/settings",
		http.MethodPut + " /api/v1/settings/:key",
		http.MethodPut + " /api/v1/bookings/:id/signature",
		http.MethodPut + " /api/v1/signatures/landlord",
		http.MethodPost + " /api/v1/bookings/:id/notify",
	} {
		assert.Contains(t, got, want)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "contract"} {
		cmd, _, err := root.Find([]string{name})
		assert.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	contractCmd, _, _ := root.Find([]string{"contract"})
	assert.NotNil(t, contractCmd.Flags().Lookup("booking"))
}
