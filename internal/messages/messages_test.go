package messages

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNew_DefaultTurkish(t *testing.T) {
	p := New("tr")

	if p.Lang() != language.Turkish {
		t.Errorf("expected Turkish, got %s", p.Lang())
	}

	want := "Lütfen geçerli bir e-posta adresi giriniz."
	if got := p.Sprintf(InvalidEmail); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNew_TurkishTexts(t *testing.T) {
	p := New("tr")

	tests := map[string]string{
		Joined:       "Harika! Listeye başarıyla eklendiniz. Yakında görüşmek üzere.",
		GenericError: "Bir hata oluştu. Lütfen tekrar deneyin.",
		Unreachable:  "Sunucuya bağlanılamadı. Lütfen internetinizi kontrol edin.",
	}
	for key, want := range tests {
		if got := p.Sprintf(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestNew_English(t *testing.T) {
	p := New("en-US")

	if p.Lang() != language.English {
		t.Errorf("expected English, got %s", p.Lang())
	}
	if got := p.Sprintf(GenericError); got != "Something went wrong. Please try again." {
		t.Errorf("unexpected English text %q", got)
	}
}

func TestNew_UnknownFallsBackToTurkish(t *testing.T) {
	for _, lang := range []string{"", "not a tag", "de"} {
		p := New(lang)
		if p.Lang() != language.Turkish {
			t.Errorf("New(%q): expected Turkish fallback, got %s", lang, p.Lang())
		}
	}
}

func TestSprintf_WithArgs(t *testing.T) {
	p := New("en")

	got := p.Sprintf(Invited, "MF-ABC123")
	if got != "You are invited! Your invite code: MF-ABC123" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestCatalogComplete(t *testing.T) {
	tr := entries[language.Turkish]
	for _, tag := range supported {
		msgs := entries[tag]
		for key := range tr {
			if _, ok := msgs[key]; !ok {
				t.Errorf("%s: missing key %q", tag, key)
			}
		}
	}
}

func TestSprintf_BatchSummary(t *testing.T) {
	tr := New("tr").Sprintf(BatchSummary, 5, 1, 1, 1, 0, 2)
	if tr != "5 adres işlendi: 1 eklendi, 1 geçersiz, 1 reddedildi, 0 bağlantı hatası, 2 atlandı" {
		t.Errorf("unexpected Turkish summary %q", tr)
	}

	en := New("en").Sprintf(BatchSummary, 5, 1, 1, 1, 0, 2)
	if en != "5 addresses processed: 1 joined, 1 invalid, 1 rejected, 0 unreachable, 2 skipped" {
		t.Errorf("unexpected English summary %q", en)
	}
}
