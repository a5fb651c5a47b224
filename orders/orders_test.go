package orders

import (
	"net/http"
	"testing"

	"agromandi/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func pendingOrder() models.Order {
	return models.Order{
		OrderID:  "ORD1",
		BuyerID:  "buyer1",
		FarmerID: "farmer1",
		Status:   models.StatusPending,
	}
}

func TestAuthorizeTransitionFarmerFlow(t *testing.T) {
	order := pendingOrder()

	code, _ := AuthorizeTransition(order, StatusChange{Status: models.StatusAccepted}, "farmer1", models.RoleFarmer)
	if code != 0 {
		t.Fatalf("farmer accept should be allowed, got %d", code)
	}

	order.Status = models.StatusAccepted
	code, _ = AuthorizeTransition(order, StatusChange{Status: models.StatusDelivered}, "farmer1", models.RoleFarmer)
	if code != 0 {
		t.Fatalf("farmer deliver should be allowed, got %d", code)
	}
}

func TestAuthorizeTransitionOwnership(t *testing.T) {
	order := pendingOrder()

	code, _ := AuthorizeTransition(order, StatusChange{Status: models.StatusAccepted}, "farmer2", models.RoleFarmer)
	if code != http.StatusForbidden {
		t.Errorf("other farmer should be forbidden, got %d", code)
	}

	code, _ = AuthorizeTransition(order, StatusChange{Status: models.StatusAccepted}, "buyer1", models.RoleBuyer)
	if code != http.StatusForbidden {
		t.Errorf("buyer accept should be forbidden, got %d", code)
	}

	code, _ = AuthorizeTransition(order, StatusChange{Status: models.StatusAccepted}, "t1", models.RoleTransporter)
	if code != http.StatusForbidden {
		t.Errorf("transporter should be forbidden, got %d", code)
	}
}

func TestAuthorizeTransitionCancellationReason(t *testing.T) {
	order := pendingOrder()

	code, _ := AuthorizeTransition(order, StatusChange{Status: models.StatusCancelled}, "farmer1", models.RoleFarmer)
	if code != http.StatusBadRequest {
		t.Errorf("cancel without reason should be rejected, got %d", code)
	}

	code, _ = AuthorizeTransition(order, StatusChange{
		Status:             models.StatusCancelled,
		CancellationReason: "out of stock",
	}, "farmer1", models.RoleFarmer)
	if code != 0 {
		t.Errorf("cancel with reason should be allowed, got %d", code)
	}
}

func TestAuthorizeTransitionBuyerCancel(t *testing.T) {
	order := pendingOrder()

	code, _ := AuthorizeTransition(order, StatusChange{
		Status:             models.StatusCancelled,
		CancellationReason: "changed my mind",
	}, "buyer1", models.RoleBuyer)
	if code != 0 {
		t.Errorf("buyer cancel of pending order should be allowed, got %d", code)
	}

	order.Status = models.StatusAccepted
	code, _ = AuthorizeTransition(order, StatusChange{
		Status:             models.StatusCancelled,
		CancellationReason: "too late",
	}, "buyer1", models.RoleBuyer)
	if code != http.StatusConflict {
		t.Errorf("buyer cancel of accepted order should conflict, got %d", code)
	}
}

func TestAuthorizeTransitionTerminalStates(t *testing.T) {
	for _, terminal := range []string{models.StatusDelivered, models.StatusCancelled} {
		order := pendingOrder()
		order.Status = terminal
		for _, next := range []string{models.StatusPending, models.StatusAccepted, models.StatusDelivered, models.StatusCancelled} {
			change := StatusChange{Status: next, CancellationReason: "x"}
			code, _ := AuthorizeTransition(order, change, "farmer1", models.RoleFarmer)
			if code != http.StatusConflict {
				t.Errorf("transition %s -> %s should conflict, got %d", terminal, next, code)
			}
		}
	}
}

func TestTransitionLost(t *testing.T) {
	if !transitionLost(&mongo.UpdateResult{MatchedCount: 0, ModifiedCount: 0}) {
		t.Error("no match means another transition won")
	}
	if transitionLost(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}) {
		t.Error("matched update is not lost")
	}
	// matched but unmodified (idempotent $set) is still ours
	if transitionLost(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 0}) {
		t.Error("matched-but-unmodified update is not lost")
	}
}

func TestAuthorizeTransitionUnknownStatus(t *testing.T) {
	order := pendingOrder()
	code, _ := AuthorizeTransition(order, StatusChange{Status: "Shipped"}, "farmer1", models.RoleFarmer)
	if code != http.StatusBadRequest {
		t.Errorf("unknown status should be rejected, got %d", code)
	}
}
