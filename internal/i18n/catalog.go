// Package i18n holds the Vietnamese notice catalog of the portal.
package i18n

import (
	_ "embed"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

// Notice keys.
const (
	LoginRequired   = "auth.login_required"
	AccessDenied    = "auth.access_denied"
	LoginSuccess    = "auth.login_success"
	LoginFailed     = "auth.login_failed"
	AccountInactive = "auth.account_inactive"
	LoggedOut       = "auth.logged_out"
	RegisterSuccess = "auth.register_success"
	RegisterFailed  = "auth.register_failed"
	RecoverySent    = "auth.recovery_sent"
	RecoveryFailed  = "auth.recovery_failed"

	LoadGeneric       = "load.generic"
	LoadFees          = "load.fees"
	LoadFeeInfo       = "load.fee_info"
	LoadHomes         = "load.homes"
	LoadHousehold     = "load.household"
	LoadFamily        = "load.family"
	LoadNotifications = "load.notifications"
	LoadAccounts      = "load.accounts"

	FeeAddSuccess    = "fee.add_success"
	FeeAddFailed     = "fee.add_failed"
	FeeEditSuccess   = "fee.edit_success"
	FeeEditFailed    = "fee.edit_failed"
	FeeDeleteSuccess = "fee.delete_success"
	FeeDeleteFailed  = "fee.delete_failed"
	FeeAssignSuccess = "fee.assign_success"
	FeeAssignFailed  = "fee.assign_failed"

	PaymentSuccess = "payment.success"
	PaymentPending = "payment.pending"
	PaymentError   = "payment.error"

	FamilyAddSuccess = "family.add_success"
	FamilyAddFailed  = "family.add_failed"

	AccountUpdateSuccess   = "account.update_success"
	AccountUpdateFailed    = "account.update_failed"
	AccountPasswordSuccess = "account.password_success"
	AccountPasswordFailed  = "account.password_failed"

	NotificationSendSuccess = "notification.send_success"
	NotificationSendFailed  = "notification.send_failed"

	StatusUpdateSuccess = "admin.status_success"
	StatusUpdateFailed  = "admin.status_failed"

	SettingsSaved  = "settings.saved"
	SettingsFailed = "settings.failed"
)

//go:embed messages.vi.yaml
var messagesVI []byte

type entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Variant     string `yaml:"variant"`
	Duration    string `yaml:"duration"`
}

type document struct {
	Notices map[string]entry `yaml:"notices"`
}

// Catalog resolves notice keys to notices.
type Catalog struct {
	notices map[string]domain.Notice
}

// Load parses the embedded Vietnamese catalog.
func Load() (*Catalog, error) {
	return Parse(messagesVI)
}

// MustLoad is Load for package initialisation; it panics on a broken catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Catalog from a YAML document.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse notice catalog: %w", err)
	}

	c := &Catalog{notices: make(map[string]domain.Notice, len(doc.Notices))}
	for key, e := range doc.Notices {
		if e.Title == "" {
			return nil, fmt.Errorf("notice %q: missing title", key)
		}

		n := domain.Notice{
			Title:       e.Title,
			Description: e.Description,
			Variant:     domain.NoticeDefault,
			Duration:    domain.DefaultNoticeDuration,
		}
		switch e.Variant {
		case "", string(domain.NoticeDefault):
		case string(domain.NoticeDestructive):
			n.Variant = domain.NoticeDestructive
		default:
			return nil, fmt.Errorf("notice %q: unknown variant %q", key, e.Variant)
		}
		if e.Duration != "" {
			d, err := time.ParseDuration(e.Duration)
			if err != nil {
				return nil, fmt.Errorf("notice %q: %w", key, err)
			}
			n.Duration = d
		}
		c.notices[key] = n
	}
	return c, nil
}

// Notice returns the notice for key. Unknown keys yield a default notice
// titled with the key itself so a missing translation stays visible.
func (c *Catalog) Notice(key string) domain.Notice {
	if n, ok := c.notices[key]; ok {
		return n
	}
	return domain.Notice{Title: key, Variant: domain.NoticeDefault, Duration: domain.DefaultNoticeDuration}
}

// Has reports whether key is defined.
func (c *Catalog) Has(key string) bool {
	_, ok := c.notices[key]
	return ok
}

// Keys returns the defined keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.notices))
	for k := range c.notices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
