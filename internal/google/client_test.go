package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCustomers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/C123/customers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customers":[{"orgDisplayName":"Acme School","domain":"acme.edu","cloudIdentityId":"abc123","orgPostalAddress":{"regionCode":"US","addressLines":["1 Main St"]}}]}`))
	}))
	defer server.Close()

	client := NewClientWithTransport("C123", server.Client())
	client.ChannelBaseURL = server.URL

	customers, err := client.ListCustomers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, "Acme School", customers[0].OrgDisplayName)
	assert.Equal(t, "abc123", customers[0].CloudIdentityID)
	assert.Equal(t, []string{"1 Main St"}, customers[0].OrgPostalAddress.AddressLines)
}

func TestListSubscriptions_CustomerFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscriptions", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("customerId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"subscriptions":[{"subscriptionId":"sub-1","status":"ACTIVE","plan":{"planName":"ANNUAL","isCommitmentPlan":true,"commitmentInterval":{"startTime":"1577836800000"}},"seats":{"licensedNumberOfSeats":50}}]}`))
	}))
	defer server.Close()

	client := NewClientWithTransport("C123", server.Client())
	client.ResellerBaseURL = server.URL

	subs, err := client.ListSubscriptions(context.Background(), "abc123")
	assert.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, "sub-1", subs[0].SubscriptionID)
	assert.True(t, subs[0].Plan.IsCommitmentPlan)
	assert.Equal(t, "1577836800000", subs[0].Plan.CommitmentInterval.StartTime)
	assert.Equal(t, 50, subs[0].Seats.LicensedNumberOfSeats)
}

func TestListDomainUsers_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithTransport("C123", server.Client())
	client.DirectoryBaseURL = server.URL

	_, err := client.ListDomainUsers(context.Background(), "acme.edu")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListDomainUsers_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithTransport("C123", server.Client())
	client.DirectoryBaseURL = server.URL

	_, err := client.ListDomainUsers(context.Background(), "gone.example")
	assert.ErrorIs(t, err, ErrNotFound)
}
