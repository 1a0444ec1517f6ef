package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

func TestLoad_EveryKeyDefined(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	keys := []string{
		LoginRequired, AccessDenied, LoginSuccess, LoginFailed, AccountInactive, LoggedOut,
		RegisterSuccess, RegisterFailed, RecoverySent, RecoveryFailed,
		LoadGeneric, LoadFees, LoadFeeInfo, LoadHomes, LoadHousehold, LoadFamily, LoadNotifications, LoadAccounts,
		FeeAddSuccess, FeeAddFailed, FeeEditSuccess, FeeEditFailed, FeeDeleteSuccess, FeeDeleteFailed,
		FeeAssignSuccess, FeeAssignFailed, PaymentSuccess, PaymentPending, PaymentError,
		FamilyAddSuccess, FamilyAddFailed, AccountUpdateSuccess, AccountUpdateFailed,
		AccountPasswordSuccess, AccountPasswordFailed, NotificationSendSuccess, NotificationSendFailed,
		StatusUpdateSuccess, StatusUpdateFailed, SettingsSaved, SettingsFailed,
	}
	for _, k := range keys {
		assert.True(t, c.Has(k), "missing notice %s", k)
	}
}

func TestLoad_KnownTexts(t *testing.T) {
	c := MustLoad()

	denied := c.Notice(AccessDenied)
	assert.Equal(t, "Không có quyền truy cập", denied.Title)
	assert.Equal(t, "Bạn không có quyền truy cập mục này", denied.Description)
	assert.True(t, denied.Destructive())
	assert.Equal(t, 2*time.Second, denied.Duration)

	assert.Equal(t, "Vui lòng đăng nhập để truy cập trang này", c.Notice(LoginRequired).Title)
	assert.Equal(t, "Không thể tải thông tin khoản thu", c.Notice(LoadFeeInfo).Description)
	assert.Equal(t, domain.NoticeDefault, c.Notice(FeeAddSuccess).Variant)
}

func TestNotice_UnknownKey(t *testing.T) {
	c := MustLoad()
	n := c.Notice("nope")
	assert.Equal(t, "nope", n.Title)
	assert.False(t, n.Destructive())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad yaml", "notices: ["},
		{"missing title", "notices:\n  a:\n    variant: default\n"},
		{"bad variant", "notices:\n  a:\n    title: x\n    variant: loud\n"},
		{"bad duration", "notices:\n  a:\n    title: x\n    duration: soon\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestParse_CustomDuration(t *testing.T) {
	c, err := Parse([]byte("notices:\n  a:\n    title: x\n    duration: 5s\n"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Notice("a").Duration)
	assert.Equal(t, []string{"a"}, c.Keys())
}
