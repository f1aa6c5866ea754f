package cows

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"cow-registry/internal/domain/activity"
	"cow-registry/internal/ports/chain"
)

// -------------------------
// Fakes
// -------------------------

type fakeWriter struct {
	births   []BirthInput
	links    []MediaLink
	birthErr error
	linkErr  error
	next     uint64
}

func (w *fakeWriter) RecordBirth(ctx context.Context, from string, in BirthInput) (Tx, error) {
	if w.birthErr != nil {
		return Tx{}, w.birthErr
	}
	w.births = append(w.births, in)
	w.next++
	return Tx{Hash: "0xb1", CowNumber: w.next}, nil
}

func (w *fakeWriter) LinkMedia(ctx context.Context, from string, in MediaLink) (Tx, error) {
	if w.linkErr != nil {
		return Tx{}, w.linkErr
	}
	w.links = append(w.links, in)
	return Tx{Hash: "0xl1"}, nil
}

func (w *fakeWriter) TransferAdmin(ctx context.Context, from, newAdmin string) (Tx, error) {
	return Tx{}, errors.New("not used")
}

type fakeAccounts struct {
	account string
	err     error
}

func (a fakeAccounts) ActiveAccount(ctx context.Context) (string, error) {
	return a.account, a.err
}

type fakeContent struct {
	added [][]byte
	hash  string
	err   error
}

func (c *fakeContent) Add(ctx context.Context, r io.Reader) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	b, _ := io.ReadAll(r)
	c.added = append(c.added, b)
	return c.hash, nil
}

type countingSyncer struct {
	mu     sync.Mutex
	owners []string
}

func (s *countingSyncer) Sync(ctx context.Context, owner string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners = append(s.owners, owner)
	return Result{Owner: owner}, nil
}

type fakeJournal struct {
	entries []activity.RecordInput
}

func (j *fakeJournal) Record(ctx context.Context, in activity.RecordInput) (activity.Entry, error) {
	j.entries = append(j.entries, in)
	return activity.Entry{Kind: in.Kind, Outcome: in.Outcome}, nil
}

type harness struct {
	cmd     *Commands
	writer  *fakeWriter
	content *fakeContent
	syncer  *countingSyncer
	status  *fakeStatus
	journal *fakeJournal
}

func newHarness(accounts chain.AccountProvider) *harness {
	h := &harness{
		writer:  &fakeWriter{},
		content: &fakeContent{hash: "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"},
		syncer:  &countingSyncer{},
		status:  &fakeStatus{},
		journal: &fakeJournal{},
	}
	h.cmd = NewCommands(CommandDeps{
		Writer:   h.writer,
		Accounts: accounts,
		Content:  h.content,
		Sync:     h.syncer,
		Status:   h.status,
		Journal:  h.journal,
	})
	return h
}

// -------------------------
// Tests
// -------------------------

func TestCreate_Success_ReportsAndSyncsOnce(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})

	tx, err := h.cmd.Create(context.Background(), BirthInput{Mom: "0", Type: "Holstein", Sex: "female"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if tx.CowNumber != 1 {
		t.Fatalf("expected cow number 1, got %d", tx.CowNumber)
	}

	if len(h.status.log) != 2 || h.status.log[0] != "info:"+MsgBreeding {
		t.Fatalf("expected progress then success, got %v", h.status.log)
	}
	if h.status.current() != "success:Successfully created Holstein !" {
		t.Fatalf("unexpected success text %q", h.status.current())
	}
	if len(h.syncer.owners) != 1 || h.syncer.owners[0] != owner {
		t.Fatalf("expected exactly one sync for %s, got %v", owner, h.syncer.owners)
	}
	if len(h.journal.entries) != 1 || h.journal.entries[0].Kind != activity.KindBirthRecorded {
		t.Fatalf("expected one birth entry, got %#v", h.journal.entries)
	}
}

func TestCreate_PassesInputsUnvalidated(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})

	in := BirthInput{Mom: "", Type: "", Sex: "???"}
	if _, err := h.cmd.Create(context.Background(), in); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(h.writer.births) != 1 || h.writer.births[0] != in {
		t.Fatalf("expected raw input forwarded, got %#v", h.writer.births)
	}
}

func TestCreate_Rejected_NoSyncRawError(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})
	h.writer.birthErr = errors.New("VM Exception while processing transaction: revert")

	if _, err := h.cmd.Create(context.Background(), BirthInput{Mom: "99", Type: "Angus", Sex: "male"}); err == nil {
		t.Fatalf("expected error")
	}
	if h.status.current() != "error:VM Exception while processing transaction: revert" {
		t.Fatalf("expected raw error on status, got %q", h.status.current())
	}
	if len(h.syncer.owners) != 0 {
		t.Fatalf("expected no sync after rejection, got %d", len(h.syncer.owners))
	}
	if len(h.journal.entries) != 1 || h.journal.entries[0].Outcome != activity.OutcomeFailed {
		t.Fatalf("expected failed journal entry, got %#v", h.journal.entries)
	}
}

func TestCreate_NoAccount_ReportsAndSkipsContract(t *testing.T) {
	h := newHarness(fakeAccounts{err: chain.ErrNoAccounts})

	if _, err := h.cmd.Create(context.Background(), BirthInput{Type: "Angus"}); !errors.Is(err, chain.ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
	if len(h.writer.births) != 0 {
		t.Fatalf("contract must not be called")
	}
	if !strings.HasPrefix(h.status.current(), "error:") {
		t.Fatalf("expected error on status, got %q", h.status.current())
	}
}

func TestUpload_Success_StoresLinksAndSyncs(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})

	res, err := h.cmd.Upload(context.Background(), UploadInput{
		CowID:    "3",
		Filename: "cow.png",
		File:     strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if res.ContentHash != h.content.hash {
		t.Fatalf("unexpected hash %q", res.ContentHash)
	}
	if len(h.content.added) != 1 || string(h.content.added[0]) != "png-bytes" {
		t.Fatalf("expected file bytes stored, got %q", h.content.added)
	}
	if len(h.writer.links) != 1 || h.writer.links[0] != (MediaLink{CowID: "3", ContentHash: h.content.hash}) {
		t.Fatalf("unexpected link %#v", h.writer.links)
	}
	if h.status.current() != "success:Successfully stored media for cow 3 !" {
		t.Fatalf("unexpected status %q", h.status.current())
	}
	if len(h.syncer.owners) != 1 {
		t.Fatalf("expected one sync, got %d", len(h.syncer.owners))
	}
}

func TestUpload_AddFails_SurfacedAndNoLink(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})
	h.content.err = errors.New("dial tcp 127.0.0.1:5001: connect: connection refused")

	if _, err := h.cmd.Upload(context.Background(), UploadInput{CowID: "1", File: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(h.status.current(), "connection refused") {
		t.Fatalf("expected add failure on status, got %q", h.status.current())
	}
	if len(h.writer.links) != 0 || len(h.syncer.owners) != 0 {
		t.Fatalf("expected no link and no sync")
	}
}

func TestUpload_LinkFails_SurfacedAndNoSync(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})
	h.writer.linkErr = errors.New("VM Exception while processing transaction: revert")

	res, err := h.cmd.Upload(context.Background(), UploadInput{CowID: "1", File: strings.NewReader("x")})
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.ContentHash == "" {
		t.Fatalf("expected stored hash even when linking fails")
	}
	if h.status.current() != "error:VM Exception while processing transaction: revert" {
		t.Fatalf("expected association error on status, got %q", h.status.current())
	}
	if len(h.syncer.owners) != 0 {
		t.Fatalf("expected no sync, got %d", len(h.syncer.owners))
	}

	last := h.journal.entries[len(h.journal.entries)-1]
	if last.Kind != activity.KindMediaLinked || last.Outcome != activity.OutcomeFailed {
		t.Fatalf("unexpected last entry %#v", last)
	}
}

func TestTransfer_IsNoOp(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})

	if err := h.cmd.Transfer(context.Background(), TransferInput{CowID: "1", To: "0x01"}); err != nil {
		t.Fatalf("Transfer returned error: %v", err)
	}
	if len(h.writer.births) != 0 || len(h.writer.links) != 0 || len(h.syncer.owners) != 0 {
		t.Fatalf("transfer must not touch contract or display")
	}
	if len(h.status.log) != 0 {
		t.Fatalf("transfer must not touch status, got %v", h.status.log)
	}
	if len(h.journal.entries) != 1 || h.journal.entries[0].Outcome != activity.OutcomeSkipped {
		t.Fatalf("expected skipped journal entry, got %#v", h.journal.entries)
	}
}

func TestRefresh_SyncsActiveAccount(t *testing.T) {
	h := newHarness(fakeAccounts{account: owner})

	account, _, err := h.cmd.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if account != owner || len(h.syncer.owners) != 1 {
		t.Fatalf("unexpected refresh result %s %v", account, h.syncer.owners)
	}
}
