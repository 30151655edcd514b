package channel

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *Set {
	return NewSet(
		Channel{ID: "slack", Name: "Slack"},
		Channel{ID: "email", Name: "Email"},
		Channel{ID: "teams", Name: "Microsoft Teams"},
	)
}

func TestNewSet(t *testing.T) {
	s := NewSet(
		Channel{ID: "slack", Name: "Slack"},
		Channel{ID: ""},
		Channel{ID: "slack", Name: "Duplicate"},
		Channel{ID: "webhook"},
	)

	require.Equal(t, 2, s.Len())

	all := s.All()
	assert.Equal(t, "slack", all[0].ID)
	assert.Equal(t, "Slack", all[0].Name)
	// Name falls back to the identifier when the catalog omits it.
	assert.Equal(t, "webhook", all[1].Name)
}

func TestToggle(t *testing.T) {
	s := testSet()

	require.True(t, s.Toggle("slack"))
	ch, ok := s.Get("slack")
	require.True(t, ok)
	assert.True(t, ch.Enabled)

	require.True(t, s.Toggle("slack"))
	ch, _ = s.Get("slack")
	assert.False(t, ch.Enabled)

	assert.False(t, s.Toggle("no-such-channel"))
}

func TestTogglePreservesStatus(t *testing.T) {
	s := testSet()
	s.Apply(ResultSet{"slack": {Status: StatusFailed}})

	s.Toggle("slack")
	s.Toggle("slack")

	ch, _ := s.Get("slack")
	assert.Equal(t, StatusFailed, ch.Status, "toggling must not touch delivery history")
}

func TestEnabledOrder(t *testing.T) {
	s := testSet()
	s.Toggle("teams")
	s.Toggle("slack")

	enabled := s.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "slack", enabled[0].ID)
	assert.Equal(t, "teams", enabled[1].ID)
}

func TestEnableOnly(t *testing.T) {
	s := testSet()
	s.Toggle("email")

	require.NoError(t, s.EnableOnly("slack", "microsoft teams"))

	enabled := s.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "slack", enabled[0].ID)
	assert.Equal(t, "teams", enabled[1].ID)

	err := s.EnableOnly("slack", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	// A failed call leaves the selection untouched.
	assert.Len(t, s.Enabled(), 2)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		results ResultSet
		want    map[string]DeliveryStatus
	}{
		{
			name:    "match by identifier",
			results: ResultSet{"slack": {Status: StatusSuccess}},
			want:    map[string]DeliveryStatus{"slack": StatusSuccess, "email": "", "teams": ""},
		},
		{
			name:    "match by case-insensitive name",
			results: ResultSet{"microsoft teams": {Status: StatusFailed}},
			want:    map[string]DeliveryStatus{"slack": "", "email": "", "teams": StatusFailed},
		},
		{
			name:    "unknown keys ignored",
			results: ResultSet{"carrier-pigeon": {Status: StatusSuccess}},
			want:    map[string]DeliveryStatus{"slack": "", "email": "", "teams": ""},
		},
		{
			name: "mixed",
			results: ResultSet{
				"slack": {Status: StatusSuccess},
				"Email": {Status: StatusSkipped},
			},
			want: map[string]DeliveryStatus{"slack": StatusSuccess, "email": StatusSkipped, "teams": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSet()
			s.Apply(tt.results)

			got := map[string]DeliveryStatus{}
			for _, ch := range s.All() {
				got[ch.ID] = ch.Status
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("statuses mismatch (-want +got):\n%s", diff)
			}

			// Unknown keys never grow the catalog.
			assert.Equal(t, 3, s.Len())
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	results := ResultSet{
		"slack": {Status: StatusSuccess},
		"email": {Status: StatusFailed, Message: "mailbox full"},
	}

	once := testSet()
	once.Apply(results)

	twice := testSet()
	twice.Apply(results)
	twice.Apply(results)

	if diff := cmp.Diff(once.All(), twice.All()); diff != "" {
		t.Errorf("applying twice changed statuses (-once +twice):\n%s", diff)
	}
}

func TestApplyRetainsPriorStatus(t *testing.T) {
	s := testSet()
	s.Apply(ResultSet{"slack": {Status: StatusFailed}, "email": {Status: StatusSuccess}})
	s.Apply(ResultSet{"email": {Status: StatusSkipped}})

	slack, _ := s.Get("slack")
	email, _ := s.Get("email")
	assert.Equal(t, StatusFailed, slack.Status, "channel absent from new result set keeps prior status")
	assert.Equal(t, StatusSkipped, email.Status)
}

func TestResultSetUnmarshal(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var rs ResultSet
		raw := `{"slack": {"status": "success", "url": "https://s.example/1"}, "email": {"status": "failed", "message": "bounced"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &rs))

		want := ResultSet{
			"slack": {Status: StatusSuccess, URL: "https://s.example/1"},
			"email": {Status: StatusFailed, Message: "bounced"},
		}
		if diff := cmp.Diff(want, rs); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("list form", func(t *testing.T) {
		var rs ResultSet
		raw := `[{"channel": "slack", "status": "success"}, {"channel": "email", "status": "skipped"}, {"status": "failed"}]`
		require.NoError(t, json.Unmarshal([]byte(raw), &rs))

		want := ResultSet{
			"slack": {Status: StatusSuccess},
			"email": {Status: StatusSkipped},
		}
		if diff := cmp.Diff(want, rs); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("null", func(t *testing.T) {
		rs := ResultSet{"stale": {}}
		require.NoError(t, json.Unmarshal([]byte(`null`), &rs))
		assert.Nil(t, rs)
	})

	t.Run("malformed", func(t *testing.T) {
		var rs ResultSet
		assert.Error(t, json.Unmarshal([]byte(`"success"`), &rs))
	})
}

func TestSynthesize(t *testing.T) {
	rs := Synthesize([]Channel{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

	want := ResultSet{
		"a": {Status: StatusSuccess},
		"b": {Status: StatusSuccess},
	}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDeliveryStatusKnown(t *testing.T) {
	assert.True(t, StatusPending.Known())
	assert.True(t, StatusSuccess.Known())
	assert.True(t, StatusFailed.Known())
	assert.True(t, StatusSkipped.Known())
	assert.False(t, DeliveryStatus("delivered").Known())
	assert.False(t, DeliveryStatus("").Known())
}
