package services

import (
	"strconv"
	"testing"

	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

type invitationFixture struct {
	svc           *InvitationService
	boards        *fakeBoardRepo
	collaborators *fakeCollaboratorRepo
	users         *fakeUserRepo
	invitations   *fakeInvitationRepo
	notifications *fakeNotificationRepo
}

func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()
	f := &invitationFixture{
		boards:        newFakeBoardRepo(),
		collaborators: newFakeCollaboratorRepo(),
		users:         newFakeUserRepo(),
		invitations:   newFakeInvitationRepo(),
		notifications: newFakeNotificationRepo(),
	}
	f.svc = NewInvitationService(f.invitations, f.boards, f.collaborators, f.users, NewNotifier(f.notifications))
	return f
}

func (f *invitationFixture) seedUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	if err := f.users.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func (f *invitationFixture) seedBoard(t *testing.T, ownerID uint) *models.Board {
	t.Helper()
	board := &models.Board{OwnerID: ownerID, Name: "Travel", Visibility: models.BoardVisibilityPublic}
	if err := f.boards.CreateBoard(board); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	return board
}

func TestSendCreatesPendingInvitationAndNotifies(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionEdit,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if invitation.Status != models.InvitationPending {
		t.Errorf("status = %q, want pending", invitation.Status)
	}
	if invitation.Permission != models.PermissionEdit {
		t.Errorf("permission = %q, want edit", invitation.Permission)
	}

	got := f.notifications.byRecipient(recipient.ID)
	if len(got) != 1 {
		t.Fatalf("recipient notifications = %d, want 1", len(got))
	}
	if got[0].Type != models.NotificationTypeBoardInvite {
		t.Errorf("notification type = %q, want board_invite", got[0].Type)
	}
	if got[0].TargetID != strconv.FormatUint(uint64(invitation.ID), 10) {
		t.Errorf("notification target = %q, want invitation ID", got[0].TargetID)
	}
}

func TestSendRejectsNonOwner(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	stranger := f.seedUser(t, "mallory")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	_, err := f.svc.Send(stranger.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestSendRejectsSelfInvitation(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	board := f.seedBoard(t, owner.ID)

	_, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: owner.ID, Permission: models.PermissionEdit,
	})
	if !IsKind(err, KindInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestSendRejectsMissingRecipient(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	board := f.seedBoard(t, owner.ID)

	_, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: 999, Permission: models.PermissionEdit,
	})
	if !IsKind(err, KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestSendRejectsExistingCollaborator(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)
	if err := f.collaborators.CreateCollaborator(&models.Collaborator{
		BoardID: board.ID, UserID: recipient.ID, Permission: models.PermissionView,
	}); err != nil {
		t.Fatalf("CreateCollaborator: %v", err)
	}

	_, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionEdit,
	})
	if !IsKind(err, KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	svcErr, _ := AsError(err)
	if svcErr.Code != "already_collaborator" {
		t.Errorf("code = %q, want already_collaborator", svcErr.Code)
	}
}

func TestSendSingleFlight(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)
	req := &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	}

	first, err := f.svc.Send(owner.ID, req)
	if err != nil {
		t.Fatalf("first Send: %v", err)
	}

	// A second invitation while one is pending is a conflict.
	_, err = f.svc.Send(owner.ID, req)
	svcErr, ok := AsError(err)
	if !ok || svcErr.Code != "already_invited" {
		t.Fatalf("second Send err = %v, want already_invited", err)
	}

	// Once the pending invitation is resolved, the owner may re-invite.
	if _, err := f.svc.Respond(recipient.ID, first.ID, InvitationActionDecline); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if _, err := f.svc.Send(owner.ID, req); err != nil {
		t.Fatalf("resend after decline: %v", err)
	}
}

// staleReadInvitationRepo simulates a sender whose existence check ran before
// a competing insert committed: the read misses, the unique index does not.
type staleReadInvitationRepo struct {
	*fakeInvitationRepo
}

func (r *staleReadInvitationRepo) GetPendingInvitation(boardID, toUserID uint) (*models.Invitation, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSendConcurrentDuplicateLandsOnUniqueIndex(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)
	req := &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	}

	if _, err := f.svc.Send(owner.ID, req); err != nil {
		t.Fatalf("first Send: %v", err)
	}

	// The interleaved sender passes the existence check but its insert must
	// not mint a second pending invitation.
	racing := NewInvitationService(&staleReadInvitationRepo{f.invitations}, f.boards, f.collaborators, f.users, NewNotifier(f.notifications))
	_, err := racing.Send(owner.ID, req)
	svcErr, ok := AsError(err)
	if !ok || svcErr.Code != "already_invited" {
		t.Fatalf("racing Send err = %v, want already_invited", err)
	}

	_, total, listErr := f.invitations.GetPendingByRecipient(recipient.ID, 1, 10)
	if listErr != nil {
		t.Fatalf("GetPendingByRecipient: %v", listErr)
	}
	if total != 1 {
		t.Errorf("pending invitations = %d, want 1", total)
	}
}

func TestRespondAcceptGrantsCollaboration(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionEdit,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	resolved, err := f.svc.Respond(recipient.ID, invitation.ID, InvitationActionAccept)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if resolved.Status != models.InvitationAccepted {
		t.Errorf("status = %q, want accepted", resolved.Status)
	}
	if resolved.RespondedAt == nil {
		t.Error("RespondedAt not set")
	}

	grant, err := f.collaborators.GetCollaborator(board.ID, recipient.ID)
	if err != nil {
		t.Fatalf("GetCollaborator: %v", err)
	}
	if grant.Permission != models.PermissionEdit {
		t.Errorf("grant permission = %q, want edit", grant.Permission)
	}

	updated, err := f.boards.GetBoardByID(board.ID)
	if err != nil {
		t.Fatalf("GetBoardByID: %v", err)
	}
	if !updated.IsCollaborative {
		t.Error("board not marked collaborative")
	}

	senderNotices := f.notifications.byRecipient(owner.ID)
	if len(senderNotices) != 1 || senderNotices[0].Type != models.NotificationTypeInviteReply {
		t.Errorf("sender notifications = %+v, want one invite_reply", senderNotices)
	}
}

func TestRespondDeclineRetractsInviteNotice(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if _, err := f.svc.Respond(recipient.ID, invitation.ID, InvitationActionDecline); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if got := f.notifications.byRecipient(recipient.ID); len(got) != 0 {
		t.Errorf("invite notice still present after decline: %+v", got)
	}
	if _, err := f.collaborators.GetCollaborator(board.ID, recipient.ID); err == nil {
		t.Error("decline must not create a collaboration grant")
	}
}

func TestRespondTerminalInvitationIsImmutable(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := f.svc.Respond(recipient.ID, invitation.ID, InvitationActionIgnore); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	_, err = f.svc.Respond(recipient.ID, invitation.ID, InvitationActionAccept)
	svcErr, ok := AsError(err)
	if !ok || svcErr.Code != "invitation_not_pending" {
		t.Fatalf("second Respond err = %v, want invitation_not_pending", err)
	}
}

func TestRespondRejectsNonRecipient(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Not even the sender may respond.
	if _, err := f.svc.Respond(owner.ID, invitation.ID, InvitationActionAccept); !IsKind(err, KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestCancelPendingInvitation(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := f.svc.Cancel(recipient.ID, invitation.ID); !IsKind(err, KindUnauthorized) {
		t.Fatalf("non-sender Cancel err = %v, want unauthorized", err)
	}

	if err := f.svc.Cancel(owner.ID, invitation.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := f.invitations.GetInvitationByID(invitation.ID); err == nil {
		t.Error("cancelled invitation should be deleted")
	}
}

func TestCancelResolvedInvitationConflicts(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := f.svc.Respond(recipient.ID, invitation.ID, InvitationActionAccept); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if err := f.svc.Cancel(owner.ID, invitation.ID); !IsKind(err, KindConflict) {
		t.Fatalf("Cancel err = %v, want conflict", err)
	}
}

func TestGetRestrictedToParticipants(t *testing.T) {
	f := newInvitationFixture(t)
	owner := f.seedUser(t, "alice")
	recipient := f.seedUser(t, "bob")
	stranger := f.seedUser(t, "mallory")
	board := f.seedBoard(t, owner.ID)

	invitation, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
		BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if _, err := f.svc.Get(owner.ID, invitation.ID); err != nil {
		t.Errorf("sender Get: %v", err)
	}
	if _, err := f.svc.Get(recipient.ID, invitation.ID); err != nil {
		t.Errorf("recipient Get: %v", err)
	}
	if _, err := f.svc.Get(stranger.ID, invitation.ID); !IsKind(err, KindUnauthorized) {
		t.Errorf("stranger Get err = %v, want unauthorized", err)
	}
}

func TestListPendingPagination(t *testing.T) {
	f := newInvitationFixture(t)
	recipient := f.seedUser(t, "bob")
	for i := 0; i < 3; i++ {
		owner := f.seedUser(t, "owner")
		board := f.seedBoard(t, owner.ID)
		if _, err := f.svc.Send(owner.ID, &models.CreateInvitationRequest{
			BoardID: board.ID, ToUserID: recipient.ID, Permission: models.PermissionView,
		}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	invitations, meta, err := f.svc.ListPending(recipient.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(invitations) != 2 {
		t.Errorf("page size = %d, want 2", len(invitations))
	}
	if meta.TotalItems != 3 || meta.TotalPages != 2 || !meta.HasNextPage {
		t.Errorf("meta = %+v, want 3 items over 2 pages", meta)
	}
}
