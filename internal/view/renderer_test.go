package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cow-registry/internal/domain/cows"
	"cow-registry/internal/domain/status"
)

func TestCard_ContainsRecordFields(t *testing.T) {
	r := MustRenderer()

	c := cows.Cow{
		Number:    7,
		Mom:       3,
		BirthDate: time.Date(2018, 2, 15, 0, 0, 0, 0, time.UTC),
		Type:      "Holstein",
		Sex:       "female",
	}
	f, err := r.Card(c)
	if err != nil {
		t.Fatalf("Card returned error: %v", err)
	}
	html := string(f.HTML)

	want := []string{
		`data-cow="7"`,
		`<h4 class="card-title">Holstein 7</h4>`,
		`Birth: 2018-02-15`,
		`Holstein 7 (female) was born from 3 on 2018-02-15.`,
	}
	for _, w := range want {
		if !strings.Contains(html, w) {
			t.Fatalf("card missing %q:\n%s", w, html)
		}
	}
	if strings.Contains(html, "<img") {
		t.Fatalf("card without media must not include an image")
	}
	if f.CowNumber != 7 {
		t.Fatalf("unexpected fragment number %d", f.CowNumber)
	}
}

func TestCard_MediaAndEscaping(t *testing.T) {
	r := MustRenderer()

	f, err := r.Card(cows.Cow{
		Number:   1,
		Type:     "<script>x</script>",
		MediaURL: "https://ipfs.io/ipfs/bafkreiabc",
	})
	if err != nil {
		t.Fatalf("Card returned error: %v", err)
	}
	html := string(f.HTML)
	if !strings.Contains(html, `src="https://ipfs.io/ipfs/bafkreiabc"`) {
		t.Fatalf("expected media url in card:\n%s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("type label must be escaped:\n%s", html)
	}
}

func TestPage_RendersStatusAndCards(t *testing.T) {
	r := MustRenderer()
	card, _ := r.Card(cows.Cow{Number: 2, Type: "Angus", Sex: "male"})

	var buf bytes.Buffer
	err := r.Page(&buf, PageData{
		Account: "0x627306090abaB3A6e1400e9345bC60c78a8BEf57",
		Status:  status.Message{Kind: status.KindSuccess, Text: "Successfully created Angus !"},
		Cards:   []Fragment{card},
	})
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	out := buf.String()
	for _, w := range []string{"Successfully created Angus !", `data-cow="2"`, `name="id"`, `name="type"`, `name="sex"`} {
		if !strings.Contains(out, w) {
			t.Fatalf("page missing %q", w)
		}
	}
}
