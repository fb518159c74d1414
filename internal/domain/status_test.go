package domain

import (
	"testing"
	"time"
)

func stamp(created time.Time, submitted *time.Time) RevisionStamp {
	s := RevisionStamp{CreatedAt: created}
	if submitted != nil {
		s.SubmitInfo = &UpdateInfo{UpdatedAt: *submitted, UpdatedBy: "state@example.com"}
	}
	return s
}

func TestStatusFromStamps(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	cases := []struct {
		name   string
		stamps []RevisionStamp
		want   Status
	}{
		{"single draft", []RevisionStamp{stamp(t0, nil)}, StatusDraft},
		{"single submitted", []RevisionStamp{stamp(t0, &t1)}, StatusSubmitted},
		{"unlocked after submit", []RevisionStamp{stamp(t0, &t1), stamp(t1, nil)}, StatusUnlocked},
		{"resubmitted", []RevisionStamp{stamp(t0, &t1), stamp(t1, &t2)}, StatusResubmitted},
		{"order independent", []RevisionStamp{stamp(t1, nil), stamp(t0, &t1)}, StatusUnlocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StatusFromStamps(tc.stamps)
			if err != nil {
				t.Fatalf("StatusFromStamps: %v", err)
			}
			if got != tc.want {
				t.Fatalf("StatusFromStamps: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatusFromStampsEmpty(t *testing.T) {
	_, err := StatusFromStamps(nil)
	if !IsCode(err, CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestReviewStatusFromActions(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := ReviewStatusFromActions(nil); got != ReviewUnderReview {
		t.Fatalf("no actions: got %s", got)
	}

	actions := []ReviewStatusAction{
		{UpdatedAt: t0, ActionType: ReviewActionMarkApproved},
		{UpdatedAt: t0.Add(time.Hour), ActionType: ReviewActionWithdraw},
	}
	if got := ReviewStatusFromActions(actions); got != ReviewWithdrawn {
		t.Fatalf("latest action should win: got %s", got)
	}

	actions = append(actions, ReviewStatusAction{UpdatedAt: t0.Add(2 * time.Hour), ActionType: ReviewActionMarkApproved})
	if got := ReviewStatusFromActions(actions); got != ReviewApproved {
		t.Fatalf("re-approval should win: got %s", got)
	}
}

func TestConsolidate(t *testing.T) {
	cases := []struct {
		status Status
		review ReviewStatus
		want   ConsolidatedStatus
	}{
		{StatusDraft, ReviewApproved, ConsolidatedDraft},
		{StatusDraft, ReviewUnderReview, ConsolidatedDraft},
		{StatusSubmitted, ReviewApproved, ConsolidatedApproved},
		{StatusUnlocked, ReviewWithdrawn, ConsolidatedWithdrawn},
		{StatusResubmitted, ReviewUnderReview, ConsolidatedResubmitted},
		{StatusSubmitted, ReviewUnderReview, ConsolidatedSubmitted},
	}
	for _, tc := range cases {
		if got := Consolidate(tc.status, tc.review); got != tc.want {
			t.Fatalf("Consolidate(%s, %s): got %s, want %s", tc.status, tc.review, got, tc.want)
		}
	}
}

func TestInitiallySubmittedAt(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	if got := InitiallySubmittedAt([]RevisionStamp{stamp(t0, nil)}); got != nil {
		t.Fatalf("draft-only: got %v, want nil", got)
	}

	got := InitiallySubmittedAt([]RevisionStamp{stamp(t0, &t1), stamp(t1, &t0)})
	if got == nil || !got.Equal(t0) {
		t.Fatalf("earliest submit time should win: got %v", got)
	}
}
