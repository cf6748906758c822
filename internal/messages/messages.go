// Package messages holds the user-facing strings of the waitlist form.
// Turkish is the default language; English is available for other locales.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	InvalidEmail = "invalid_email"
	Joined       = "joined"
	GenericError = "generic_error"
	Unreachable  = "unreachable"
	Invited      = "invited"
	NotInvited   = "not_invited"
	BatchSummary = "batch_summary"
	EmailPrompt  = "email_prompt"
)

var supported = []language.Tag{language.Turkish, language.English}

var entries = map[language.Tag]map[string]string{
	language.Turkish: {
		InvalidEmail: "Lütfen geçerli bir e-posta adresi giriniz.",
		Joined:       "Harika! Listeye başarıyla eklendiniz. Yakında görüşmek üzere.",
		GenericError: "Bir hata oluştu. Lütfen tekrar deneyin.",
		Unreachable:  "Sunucuya bağlanılamadı. Lütfen internetinizi kontrol edin.",
		Invited:      "Davet edildiniz! Davet kodunuz: %s",
		NotInvited:   "Henüz davet edilmediniz.",
		BatchSummary: "%d adres işlendi: %d eklendi, %d geçersiz, %d reddedildi, %d bağlantı hatası, %d atlandı",
		EmailPrompt:  "E-posta adresiniz: ",
	},
	language.English: {
		InvalidEmail: "Please enter a valid email address.",
		Joined:       "Great! You have been added to the list. See you soon.",
		GenericError: "Something went wrong. Please try again.",
		Unreachable:  "Could not reach the server. Please check your internet connection.",
		Invited:      "You are invited! Your invite code: %s",
		NotInvited:   "You have not been invited yet.",
		BatchSummary: "%d addresses processed: %d joined, %d invalid, %d rejected, %d unreachable, %d skipped",
		EmailPrompt:  "Your email address: ",
	},
}

var (
	cat     *catalog.Builder
	matcher = language.NewMatcher(supported)
)

func init() {
	cat = catalog.NewBuilder(catalog.Fallback(language.Turkish))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			if err := cat.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Printer formats message keys in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for lang. Unparseable or unsupported languages get Turkish.
func New(lang string) *Printer {
	tag := language.Turkish
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Lang returns the language the Printer resolved to.
func (p *Printer) Lang() language.Tag {
	return p.tag
}

func (p *Printer) Sprintf(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}
