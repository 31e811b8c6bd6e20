package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/core"
)

func TestRegisterAndGet(t *testing.T) {
	Register("test_variant", func() Variant {
		return Variant{ID: "test_variant", Title: "Test", Rules: core.DefaultRules()}
	})

	if !Exists("test_variant") {
		t.Fatal("registered variant should exist")
	}

	v, err := Get("test_variant")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if v.Title != "Test" || v.Rules.StartLength != 3 {
		t.Errorf("unexpected variant %+v", v)
	}

	found := false
	for _, info := range List() {
		if info.ID == "test_variant" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered variant")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("does-not-exist")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_variant", func() Variant { return Variant{ID: "dup_variant"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("dup_variant", func() Variant { return Variant{ID: "dup_variant"} })
}

func TestListSorted(t *testing.T) {
	Register("zz_variant", func() Variant { return Variant{ID: "zz_variant"} })
	Register("aa_variant", func() Variant { return Variant{ID: "aa_variant"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
