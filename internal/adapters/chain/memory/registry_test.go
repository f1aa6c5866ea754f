package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cow-registry/internal/domain/cows"
	"cow-registry/internal/ports/chain"
)

const other = "0xf17f52151EbEF6C7334FAD080c5704D77216b732"

func TestRegistry_BirthAssignsConsecutiveNumbers(t *testing.T) {
	r := NewRegistry("")
	ctx := context.Background()

	for i, mom := range []string{"0", "1", "1"} {
		tx, err := r.RecordBirth(ctx, DevAccount, cows.BirthInput{Mom: mom, Type: "Holstein", Sex: "female"})
		if err != nil {
			t.Fatalf("RecordBirth %d returned error: %v", i, err)
		}
		if tx.CowNumber != uint64(i+1) {
			t.Fatalf("expected cow %d, got %d", i+1, tx.CowNumber)
		}
		if tx.Hash == "" {
			t.Fatalf("expected tx hash")
		}
	}

	ids, _ := r.CowsByOwner(ctx, DevAccount)
	if len(ids) != 3 {
		t.Fatalf("expected 3 cows, got %v", ids)
	}

	idx, _ := r.IndexByCowNum(ctx, 3)
	c, err := r.Cow(ctx, idx)
	if err != nil {
		t.Fatalf("Cow returned error: %v", err)
	}
	if c.Number != 3 || c.Mom != 1 || c.Index != 2 {
		t.Fatalf("unexpected cow %#v", c)
	}
}

func TestRegistry_UnknownMomReverts(t *testing.T) {
	r := NewRegistry("")

	_, err := r.RecordBirth(context.Background(), DevAccount, cows.BirthInput{Mom: "5", Type: "Angus"})
	if !errors.Is(err, ErrRevert) {
		t.Fatalf("expected revert, got %v", err)
	}

	_, err = r.RecordBirth(context.Background(), DevAccount, cows.BirthInput{Mom: "x"})
	if err == nil {
		t.Fatalf("expected invalid number error")
	}
}

func TestRegistry_BirthDateNeverGoesBack(t *testing.T) {
	r := NewRegistry("")
	ctx := context.Background()

	base := time.Date(2018, 2, 15, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }
	_, _ = r.RecordBirth(ctx, DevAccount, cows.BirthInput{Mom: "0"})

	r.now = func() time.Time { return base.Add(-time.Hour) }
	_, _ = r.RecordBirth(ctx, DevAccount, cows.BirthInput{Mom: "0"})

	c, _ := r.Cow(ctx, 1)
	if !c.BirthDate.Equal(base) {
		t.Fatalf("expected clamped birth date %v, got %v", base, c.BirthDate)
	}
}

func TestRegistry_URISetOnceByOwner(t *testing.T) {
	r := NewRegistry("")
	ctx := context.Background()
	_, _ = r.RecordBirth(ctx, DevAccount, cows.BirthInput{Mom: "0"})

	if _, err := r.LinkMedia(ctx, other, cows.MediaLink{CowID: "1", ContentHash: "a"}); !errors.Is(err, ErrRevert) {
		t.Fatalf("expected revert for non-owner, got %v", err)
	}
	if _, err := r.LinkMedia(ctx, DevAccount, cows.MediaLink{CowID: "1", ContentHash: "a"}); err != nil {
		t.Fatalf("LinkMedia returned error: %v", err)
	}
	if _, err := r.LinkMedia(ctx, DevAccount, cows.MediaLink{CowID: "1", ContentHash: "b"}); !errors.Is(err, ErrRevert) {
		t.Fatalf("expected revert on second set, got %v", err)
	}

	uri, _ := r.CowURI(ctx, 1)
	if uri != "a" {
		t.Fatalf("expected first uri kept, got %q", uri)
	}
}

func TestRegistry_TransferAdminOnlyByAdmin(t *testing.T) {
	r := NewRegistry("")
	ctx := context.Background()

	if _, err := r.TransferAdmin(ctx, other, other); !errors.Is(err, ErrRevert) {
		t.Fatalf("expected revert, got %v", err)
	}
	if _, err := r.TransferAdmin(ctx, DevAccount, other); err != nil {
		t.Fatalf("TransferAdmin returned error: %v", err)
	}
	admin, _ := r.Admin(ctx)
	if admin != other {
		t.Fatalf("expected new admin %s, got %s", other, admin)
	}
}

func TestAccounts_Empty(t *testing.T) {
	_, err := NewAccounts(" ", "").ActiveAccount(context.Background())
	if !errors.Is(err, chain.ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}

	got, _ := NewAccounts(DevAccount, other).ActiveAccount(context.Background())
	if got != DevAccount {
		t.Fatalf("expected first account, got %s", got)
	}
}
