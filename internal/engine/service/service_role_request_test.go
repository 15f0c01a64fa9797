// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/testutil"
	"github.com/go-arcade/hackhub/pkg/statemachine"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var longReason = strings.Repeat("I have organized three student hackathons. ", 2)

func submit(t *testing.T, f *fixture, userId, role string) *model.RoleRequest {
	t.Helper()
	rr, err := f.svc.RoleRequest.SubmitRoleRequest(context.Background(), userId, &model.SubmitRoleRequestReq{
		RoleType: role,
		Reason:   longReason,
	})
	require.NoError(t, err)
	return rr
}

func decide(f *fixture, requestId string, decision statemachine.ReviewStatus) (*model.StatusMessage, error) {
	return f.svc.RoleRequest.DecideRoleRequest(context.Background(), requestId, "moderator-1", &model.DecideRoleRequestReq{
		Decision:    string(decision),
		ReviewNotes: "checked",
	})
}

func TestSubmitRoleRequest_MissingRoleRow(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	require.NoError(t, f.db.Where("name = ?", model.RoleRecruiter).Delete(&model.Role{}).Error)

	_, err := f.svc.RoleRequest.SubmitRoleRequest(context.Background(), u.UserId, &model.SubmitRoleRequestReq{
		RoleType: model.RoleRecruiter,
		Reason:   longReason,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.count(t, "t_role_request"))
}

func TestSubmitRoleRequest_Valid(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	url := "https://example.com/portfolio"

	rr, err := f.svc.RoleRequest.SubmitRoleRequest(context.Background(), u.UserId, &model.SubmitRoleRequestReq{
		RoleType:      model.RoleOrganizer,
		Reason:        longReason,
		SupportingUrl: &url,
	})
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewPending, rr.Status)
	assert.Len(t, rr.RequestId, 26)

	var rows []model.RoleRequest
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, statemachine.ReviewPending, rows[0].Status)
	assert.Equal(t, strings.TrimSpace(longReason), rows[0].Reason)
	require.NotNil(t, rows[0].SupportingUrl)
	assert.Equal(t, url, *rows[0].SupportingUrl)
	assert.Equal(t, "role-organizer", rows[0].RoleId)

	n, err := promtest.GatherAndCount(f.metrics.GetRegistry(), "hackhub_role_requests_submitted_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmitRoleRequest_Validation(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	badUrl := "ftp://example.com/file"
	notUrl := "portfolio"

	cases := []struct {
		name string
		req  model.SubmitRoleRequestReq
	}{
		{"unknown role", model.SubmitRoleRequestReq{RoleType: "JUDGE", Reason: longReason}},
		{"empty reason", model.SubmitRoleRequestReq{RoleType: model.RoleOrganizer, Reason: "   "}},
		{"short reason", model.SubmitRoleRequestReq{RoleType: model.RoleOrganizer, Reason: "please"}},
		{"non http url", model.SubmitRoleRequestReq{RoleType: model.RoleOrganizer, Reason: longReason, SupportingUrl: &badUrl}},
		{"relative url", model.SubmitRoleRequestReq{RoleType: model.RoleOrganizer, Reason: longReason, SupportingUrl: &notUrl}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RoleRequest.SubmitRoleRequest(context.Background(), u.UserId, &tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, f.count(t, "t_role_request"))
}

func TestDecideRoleRequest_ApproveReplacesParticipant(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	msg, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewApproved, msg.Status)
	assert.Equal(t, rr.RequestId, msg.RequestId)

	assert.Equal(t, []string{model.RoleOrganizer}, testutil.RoleNames(t, f.db, u.UserId))
	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewApproved, got.Status)
	require.NotNil(t, got.ReviewNotes)
	assert.Equal(t, "checked", *got.ReviewNotes)
	require.NotNil(t, got.ReviewerId)
	assert.Equal(t, "moderator-1", *got.ReviewerId)
}

func TestDecideRoleRequest_ApproveParticipantKeepsIt(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleRecruiter)
	rr := submit(t, f, u.UserId, model.RoleParticipant)

	_, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleParticipant}, testutil.RoleNames(t, f.db, u.UserId))
}

func TestDecideRoleRequest_ApproveHeldRole(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleOrganizer)
	var before model.UserRole
	require.NoError(t, f.db.Where("user_id = ?", u.UserId).First(&before).Error)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	time.Sleep(10 * time.Millisecond)
	_, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	require.NoError(t, err)

	var rows []model.UserRole
	require.NoError(t, f.db.Where("user_id = ?", u.UserId).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, before.ID, rows[0].ID)
	assert.True(t, rows[0].UpdatedAt.After(before.UpdatedAt))
}

func TestDecideRoleRequest_RejectLeavesRolesAlone(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleAdmin)

	var before []model.UserRole
	require.NoError(t, f.db.Order("id").Find(&before).Error)

	msg, err := decide(f, rr.RequestId, statemachine.ReviewRejected)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewRejected, msg.Status)

	var after []model.UserRole
	require.NoError(t, f.db.Order("id").Find(&after).Error)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].RoleId, after[i].RoleId)
		assert.True(t, before[i].UpdatedAt.Equal(after[i].UpdatedAt))
	}
	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewRejected, got.Status)
}

func TestDecideRoleRequest_ConcurrentApprovals(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = decide(f, rr.RequestId, statemachine.ReviewApproved)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, []string{model.RoleOrganizer}, testutil.RoleNames(t, f.db, u.UserId))
	assert.EqualValues(t, 1, f.count(t, "t_user_role"))
}

func TestDecideRoleRequest_ConcurrentGrantsForSameUser(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	a := submit(t, f, u.UserId, model.RoleOrganizer)
	b := submit(t, f, u.UserId, model.RoleRecruiter)

	var wg sync.WaitGroup
	for _, id := range []string{a.RequestId, b.RequestId} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := decide(f, id, statemachine.ReviewApproved)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	roles := testutil.RoleNames(t, f.db, u.UserId)
	require.Len(t, roles, 1)
	assert.Contains(t, []string{model.RoleOrganizer, model.RoleRecruiter}, roles[0])
}

func TestDecideRoleRequest_AlreadyDecided(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	_, err := decide(f, rr.RequestId, statemachine.ReviewRejected)
	require.NoError(t, err)

	_, err = decide(f, rr.RequestId, statemachine.ReviewApproved)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewRejected, got.Status)
	assert.Equal(t, []string{model.RoleParticipant}, testutil.RoleNames(t, f.db, u.UserId))
}

func TestDecideRoleRequest_Errors(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	_, err := decide(f, "01ARZ3NDEKTSV4RRFFQ69G5FAV", statemachine.ReviewApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = decide(f, rr.RequestId, statemachine.ReviewPending)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.RoleRequest.DecideRoleRequest(context.Background(), rr.RequestId, "m", &model.DecideRoleRequestReq{Decision: "MAYBE"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecideRoleRequest_MissingParticipantRollsBack(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleRecruiter)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)
	require.NoError(t, f.db.Where("name = ?", model.RoleParticipant).Delete(&model.Role{}).Error)

	_, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	assert.ErrorIs(t, err, ErrConfiguration)

	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewPending, got.Status)
	assert.Equal(t, []string{model.RoleRecruiter}, testutil.RoleNames(t, f.db, u.UserId))
}

func TestDecideRoleRequest_FailedGrantRollsBack(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)
	testutil.FailInserts(t, f.db, "t_user_role", errors.New("disk full"))

	_, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	require.Error(t, err)

	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewPending, got.Status)
	assert.Equal(t, []string{model.RoleParticipant}, testutil.RoleNames(t, f.db, u.UserId))
}

func TestRoleRequest_Lists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	bob := testutil.NewUser(t, f.db, "bob", model.RoleParticipant)
	a := submit(t, f, alice.UserId, model.RoleOrganizer)
	b := submit(t, f, bob.UserId, model.RoleRecruiter)
	_, err := decide(f, a.RequestId, statemachine.ReviewRejected)
	require.NoError(t, err)

	pending, err := f.svc.RoleRequest.ListPendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.RequestId, pending[0].RequestId)

	mine, err := f.svc.RoleRequest.ListUserRoleRequests(ctx, alice.UserId)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = f.svc.RoleRequest.GetRoleRequest(ctx, b.RequestId, alice.UserId, false)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := f.svc.RoleRequest.GetRoleRequest(ctx, b.RequestId, alice.UserId, true)
	require.NoError(t, err)
	assert.Equal(t, bob.UserId, got.UserId)
}

type queryRecord struct {
	table   string
	locking bool
}

// recordQueries captures every SELECT with whether it carried FOR UPDATE
func recordQueries(t *testing.T, db *gorm.DB) *[]queryRecord {
	t.Helper()
	var (
		mu   sync.Mutex
		recs []queryRecord
	)
	name := "test:record_queries"
	require.NoError(t, db.Callback().Query().After("gorm:query").Register(name, func(tx *gorm.DB) {
		_, locking := tx.Statement.Clauses["FOR"]
		mu.Lock()
		recs = append(recs, queryRecord{table: tx.Statement.Table, locking: locking})
		mu.Unlock()
	}))
	t.Cleanup(func() { _ = db.Callback().Query().Remove(name) })
	return &recs
}

func TestDecideRoleRequest_ReadsUnderLocks(t *testing.T) {
	f := newFixture(t)
	u := testutil.NewUser(t, f.db, "alice", model.RoleParticipant)
	rr := submit(t, f, u.UserId, model.RoleOrganizer)

	recs := recordQueries(t, f.db)
	_, err := decide(f, rr.RequestId, statemachine.ReviewApproved)
	require.NoError(t, err)

	require.NotEmpty(t, *recs)
	assert.Equal(t, queryRecord{table: "t_role_request", locking: true}, (*recs)[0])

	userLocked := false
	for _, r := range *recs {
		if !userLocked {
			assert.True(t, r.locking, "%s read without a lock before the user row was locked", r.table)
		}
		if r.table == "t_user" && r.locking {
			userLocked = true
		}
		if r.table == "t_user_role" {
			assert.True(t, r.locking, "role assignments must be read with a lock")
		}
	}
	assert.True(t, userLocked)
	assert.Equal(t, []string{model.RoleOrganizer}, testutil.RoleNames(t, f.db, u.UserId))
}

func TestDecideRoleRequest_OwnRequestForbidden(t *testing.T) {
	f := newFixture(t)
	mod := testutil.NewUser(t, f.db, "mod", model.RoleModerator)
	rr := submit(t, f, mod.UserId, model.RoleAdmin)

	_, err := f.svc.RoleRequest.DecideRoleRequest(context.Background(), rr.RequestId, mod.UserId, &model.DecideRoleRequestReq{
		Decision: string(statemachine.ReviewApproved),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.repos.RoleRequest.GetRoleRequest(context.Background(), rr.RequestId)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ReviewPending, got.Status)
	assert.Equal(t, []string{model.RoleModerator}, testutil.RoleNames(t, f.db, mod.UserId))
}
