package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "farmer1",
	}
	hub.Register(client)

	data := []byte(`{"type":"order-created","orderId":"ORD1"}`)
	hub.Publish("farmer1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubStopUnblocksSenders(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Publish("farmer1", []byte("late"))
		hub.Register(&Client{Send: make(chan []byte, 1), Room: "farmer1"})
		hub.Unregister(&Client{Send: make(chan []byte, 1), Room: "farmer1"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("sender blocked on a stopped hub")
	}
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	farmer := &Client{Send: make(chan []byte, 10), Room: "farmer1"}
	other := &Client{Send: make(chan []byte, 10), Room: "farmer2"}
	hub.Register(farmer)
	hub.Register(other)

	hub.Publish("farmer1", []byte("hello"))

	select {
	case <-farmer.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message in other room: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
