package rabbitmq

import (
	"context"
	"errors"
	"testing"
)

func TestCreateExchange_Validate(t *testing.T) {
	var vErr *ValidationError

	err := CreateExchange{Type: ExchangeTopic}.Validate()
	if !errors.As(err, &vErr) || vErr.Field != "name" {
		t.Fatalf("Validate() = %v, want name required", err)
	}

	err = CreateExchange{Name: "e"}.Validate()
	if !errors.As(err, &vErr) || vErr.Field != "type" || vErr.Code != ErrCodeRequired {
		t.Fatalf("Validate() = %v, want type required", err)
	}

	err = CreateExchange{Name: "e", Type: "x-random"}.Validate()
	if !errors.As(err, &vErr) || vErr.Code != ErrCodeEnum {
		t.Fatalf("Validate() = %v, want enum error", err)
	}

	for _, et := range []ExchangeType{ExchangeDirect, ExchangeFanout, ExchangeTopic, ExchangeHeaders} {
		if err := (CreateExchange{Name: "e", Type: et}).Validate(); err != nil {
			t.Errorf("Validate(type=%q) = %v, want nil", et, err)
		}
	}
}

func TestCreateExchange_SendsPut(t *testing.T) {
	fb := newFakeBroker(t, 201, nil)

	err := fb.client().CreateExchange(context.Background(), "/", CreateExchange{
		Name:    "events",
		Type:    ExchangeTopic,
		Durable: true,
	})
	if err != nil {
		t.Fatalf("CreateExchange() error = %v", err)
	}

	if fb.lastMethod != "PUT" || fb.lastPath != "/api/exchanges/%2F/events" {
		t.Errorf("request = %s %s, want PUT /api/exchanges/%%2F/events", fb.lastMethod, fb.lastPath)
	}
	if fb.lastBody["type"] != "topic" {
		t.Errorf("type = %v, want topic", fb.lastBody["type"])
	}
	if fb.lastBody["durable"] != true {
		t.Errorf("durable = %v, want true", fb.lastBody["durable"])
	}
	if fb.lastBody["internal"] != false {
		t.Errorf("internal = %v, want false", fb.lastBody["internal"])
	}
	if _, ok := fb.lastBody["arguments"]; ok {
		t.Error("body carries arguments, want omitted when empty")
	}
}

func TestCreateExchange_NoRequestOnValidationFailure(t *testing.T) {
	fb := newFakeBroker(t, 201, nil)

	err := fb.client().CreateExchange(context.Background(), "/", CreateExchange{Name: "e"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("CreateExchange() = %v, want *ValidationError", err)
	}
	if n := fb.calls.Load(); n != 0 {
		t.Errorf("broker received %d requests, want 0", n)
	}
}

func TestGetExchange(t *testing.T) {
	fb := newFakeBroker(t, 200, Exchange{
		Name:    "events",
		Vhost:   "/",
		Type:    "topic",
		Durable: true,
	})

	exchange, err := fb.client().GetExchange(context.Background(), "/", "events")
	if err != nil {
		t.Fatalf("GetExchange() error = %v", err)
	}
	if fb.lastPath != "/api/exchanges/%2F/events" {
		t.Errorf("path = %q, want /api/exchanges/%%2F/events", fb.lastPath)
	}
	if exchange.Type != "topic" || !exchange.Durable {
		t.Errorf("exchange = %+v", exchange)
	}
}

func TestListExchanges(t *testing.T) {
	fb := newFakeBroker(t, 200, []Exchange{{Name: ""}, {Name: "amq.topic"}})

	exchanges, err := fb.client().ListExchanges(context.Background())
	if err != nil {
		t.Fatalf("ListExchanges() error = %v", err)
	}
	if fb.lastPath != "/api/exchanges" {
		t.Errorf("path = %q, want /api/exchanges", fb.lastPath)
	}
	if len(exchanges) != 2 {
		t.Fatalf("len(exchanges) = %d, want 2", len(exchanges))
	}
}

func TestListVhostExchanges(t *testing.T) {
	fb := newFakeBroker(t, 200, []Exchange{{Name: "events", Vhost: "orders"}})

	exchanges, err := fb.client().ListVhostExchanges(context.Background(), "orders")
	if err != nil {
		t.Fatalf("ListVhostExchanges() error = %v", err)
	}
	if fb.lastPath != "/api/exchanges/orders" {
		t.Errorf("path = %q, want /api/exchanges/orders", fb.lastPath)
	}
	if len(exchanges) != 1 {
		t.Fatalf("len(exchanges) = %d, want 1", len(exchanges))
	}
}

func TestDeleteExchange(t *testing.T) {
	fb := newFakeBroker(t, 204, nil)

	if err := fb.client().DeleteExchange(context.Background(), "/", "events"); err != nil {
		t.Fatalf("DeleteExchange() error = %v", err)
	}
	if fb.lastMethod != "DELETE" || fb.lastPath != "/api/exchanges/%2F/events" {
		t.Errorf("request = %s %s, want DELETE /api/exchanges/%%2F/events", fb.lastMethod, fb.lastPath)
	}
}
