package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"gorm.io/gorm"
)

// Invitation response actions
const (
	InvitationActionAccept  = "accept"
	InvitationActionDecline = "decline"
	InvitationActionIgnore  = "ignore"
)

// InvitationService manages the invitation lifecycle that produces
// collaboration grants: send -> accept/decline/ignore, or cancel while
// pending. Terminal invitations are immutable.
type InvitationService struct {
	invitations   repositories.InvitationRepository
	boards        repositories.BoardRepository
	collaborators repositories.CollaboratorRepository
	users         repositories.UserRepository
	notifier      *Notifier
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	boardRepo repositories.BoardRepository,
	collaboratorRepo repositories.CollaboratorRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *InvitationService {
	return &InvitationService{
		invitations:   invitationRepo,
		boards:        boardRepo,
		collaborators: collaboratorRepo,
		users:         userRepo,
		notifier:      notifier,
	}
}

// Send creates a pending invitation from the board owner to another user and
// notifies the recipient. At most one invitation per (board, recipient) may be
// pending at a time.
func (s *InvitationService) Send(actorID uint, req *models.CreateInvitationRequest) (*models.Invitation, error) {
	board, err := s.boards.GetBoardByID(req.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("board_not_found", "Board not found")
		}
		return nil, err
	}
	if board.OwnerID != actorID {
		return nil, unauthorized("not_board_owner", "Only the board owner can invite collaborators")
	}

	if req.ToUserID == actorID {
		return nil, invalidArgument("self_invitation", "Cannot invite yourself to your own board")
	}
	if req.Permission != models.PermissionView && req.Permission != models.PermissionEdit {
		return nil, invalidArgument("invalid_permission", "Permission must be view or edit")
	}

	recipient, err := s.users.GetUserByID(req.ToUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user_not_found", "Recipient user not found")
		}
		return nil, err
	}

	if _, err := s.collaborators.GetCollaborator(req.BoardID, req.ToUserID); err == nil {
		return nil, conflict("already_collaborator", "User is already a collaborator on this board")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.invitations.GetPendingInvitation(req.BoardID, req.ToUserID); err == nil {
		return nil, conflict("already_invited", "An invitation for this user is already pending")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invitation := &models.Invitation{
		BoardID:    req.BoardID,
		FromUserID: actorID,
		ToUserID:   req.ToUserID,
		Permission: req.Permission,
		Message:    req.Message,
		Status:     models.InvitationPending,
	}
	if err := s.invitations.CreateInvitation(invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("already_invited", "An invitation for this user is already pending")
		}
		return nil, err
	}

	sender, senderErr := s.users.GetUserByID(actorID)
	message := "You were invited to collaborate on board " + board.Name
	if senderErr == nil {
		message = sender.Name + " invited you to collaborate on board " + board.Name
	}
	s.notifier.Notify(recipient.ID, actorID, models.NotificationTypeBoardInvite, message,
		strconv.FormatUint(uint64(invitation.ID), 10), "invitation")

	return invitation, nil
}

// Respond resolves a pending invitation as the recipient. Accepting creates
// the collaboration grant at the requested permission, marks the board
// collaborative and notifies the sender; declining or ignoring retracts the
// original invite notice.
func (s *InvitationService) Respond(actorID, invitationID uint, action string) (*models.Invitation, error) {
	invitation, err := s.getInvitation(invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.ToUserID != actorID {
		return nil, unauthorized("not_invitation_recipient", "Only the invited user can respond to this invitation")
	}
	if invitation.Status != models.InvitationPending {
		return nil, conflict("invitation_not_pending", "Invitation has already been resolved")
	}

	now := time.Now()
	invitation.RespondedAt = &now

	switch action {
	case InvitationActionAccept:
		invitation.Status = models.InvitationAccepted
	case InvitationActionDecline:
		invitation.Status = models.InvitationDeclined
	case InvitationActionIgnore:
		invitation.Status = models.InvitationIgnored
	default:
		return nil, invalidArgument("invalid_action", "Action must be accept, decline or ignore")
	}

	if err := s.invitations.UpdateInvitation(invitation); err != nil {
		return nil, err
	}

	targetID := strconv.FormatUint(uint64(invitation.ID), 10)

	if invitation.Status == models.InvitationAccepted {
		grant := &models.Collaborator{
			BoardID:    invitation.BoardID,
			UserID:     invitation.ToUserID,
			Permission: invitation.Permission,
		}
		if err := s.collaborators.CreateCollaborator(grant); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if err := s.boards.MarkCollaborative(invitation.BoardID); err != nil {
			return nil, err
		}

		recipient, recipientErr := s.users.GetUserByID(actorID)
		message := "Your board invitation was accepted"
		if recipientErr == nil {
			message = recipient.Name + " accepted your board invitation"
		}
		s.notifier.Notify(invitation.FromUserID, actorID, models.NotificationTypeInviteReply, message, targetID, "invitation")
	} else {
		s.notifier.RetractByTarget(targetID, models.NotificationTypeBoardInvite)
	}

	return invitation, nil
}

// Cancel deletes a pending invitation as its sender. No terminal status is
// retained; the record is removed outright.
func (s *InvitationService) Cancel(actorID, invitationID uint) error {
	invitation, err := s.getInvitation(invitationID)
	if err != nil {
		return err
	}
	if invitation.FromUserID != actorID {
		return unauthorized("not_invitation_sender", "Only the sender can cancel this invitation")
	}
	if invitation.Status != models.InvitationPending {
		return conflict("invitation_not_pending", "Only a pending invitation can be cancelled")
	}

	return s.invitations.DeleteInvitation(invitation.ID)
}

// Get retrieves an invitation for one of its participants
func (s *InvitationService) Get(actorID, invitationID uint) (*models.Invitation, error) {
	invitation, err := s.getInvitation(invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.FromUserID != actorID && invitation.ToUserID != actorID {
		return nil, unauthorized("not_invitation_participant", "You are not a participant of this invitation")
	}
	return invitation, nil
}

// ListPending returns the invitations awaiting the actor, paginated
func (s *InvitationService) ListPending(actorID uint, page, size int) ([]models.Invitation, Pagination, error) {
	page, size = NormalizePageSize(page, size)
	invitations, total, err := s.invitations.GetPendingByRecipient(actorID, page, size)
	if err != nil {
		return nil, Pagination{}, err
	}
	return invitations, NewPagination(page, size, total), nil
}

func (s *InvitationService) getInvitation(invitationID uint) (*models.Invitation, error) {
	invitation, err := s.invitations.GetInvitationByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("invitation_not_found", "Invitation not found")
		}
		return nil, err
	}
	return invitation, nil
}
