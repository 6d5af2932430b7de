package search

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilter_Blank(t *testing.T) {
	if got := Filter("   ", "name"); got != nil {
		t.Fatalf("Filter(blank) = %v, want nil", got)
	}
	if got := Filter("x"); got != nil {
		t.Fatalf("Filter(no fields) = %v, want nil", got)
	}
}

func TestFilter_EscapesAndOrs(t *testing.T) {
	got := Filter(" a.b+ ", "name", "email")
	or, ok := got["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with 2 clauses, got %v", got)
	}
	rx := or[1].(bson.M)["email"].(primitive.Regex)
	if rx.Pattern != `a\.b\+` || rx.Options != "i" {
		t.Errorf("regex = %+v", rx)
	}
}

func TestAnd(t *testing.T) {
	if got := And(); len(got) != 0 {
		t.Errorf("And() = %v, want empty", got)
	}
	one := bson.M{"status": "published"}
	if got := And(nil, one, bson.M{}); got["status"] != "published" {
		t.Errorf("And(single) = %v", got)
	}
	got := And(one, bson.M{"role": "ADMIN"})
	if all, ok := got["$and"].(bson.A); !ok || len(all) != 2 {
		t.Errorf("And(two) = %v", got)
	}
}
