package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the store-level behavior the
// services depend on: gorm.ErrRecordNotFound for missing rows,
// gorm.ErrDuplicatedKey on unique-index violations, and counter floors.

type fakeBoardRepo struct {
	boards map[uint]*models.Board
	nextID uint
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[uint]*models.Board), nextID: 1}
}

func (r *fakeBoardRepo) CreateBoard(board *models.Board) error {
	board.ID = r.nextID
	r.nextID++
	copied := *board
	r.boards[board.ID] = &copied
	return nil
}

func (r *fakeBoardRepo) GetBoardByID(id uint) (*models.Board, error) {
	board, ok := r.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *board
	return &copied, nil
}

func (r *fakeBoardRepo) GetBoardsByOwner(ownerID uint) ([]models.Board, error) {
	var out []models.Board
	for _, b := range r.boards {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBoardRepo) UpdateBoard(board *models.Board) error {
	if _, ok := r.boards[board.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *board
	r.boards[board.ID] = &copied
	return nil
}

func (r *fakeBoardRepo) DeleteBoard(id uint) error {
	delete(r.boards, id)
	return nil
}

func (r *fakeBoardRepo) MarkCollaborative(id uint) error {
	board, ok := r.boards[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	board.IsCollaborative = true
	return nil
}

type collabKey struct {
	boardID uint
	userID  uint
}

type fakeCollaboratorRepo struct {
	grants map[collabKey]*models.Collaborator
	nextID uint
}

func newFakeCollaboratorRepo() *fakeCollaboratorRepo {
	return &fakeCollaboratorRepo{grants: make(map[collabKey]*models.Collaborator), nextID: 1}
}

func (r *fakeCollaboratorRepo) CreateCollaborator(collaborator *models.Collaborator) error {
	key := collabKey{collaborator.BoardID, collaborator.UserID}
	if _, ok := r.grants[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	collaborator.ID = r.nextID
	r.nextID++
	copied := *collaborator
	r.grants[key] = &copied
	return nil
}

func (r *fakeCollaboratorRepo) GetCollaborator(boardID, userID uint) (*models.Collaborator, error) {
	grant, ok := r.grants[collabKey{boardID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *grant
	return &copied, nil
}

func (r *fakeCollaboratorRepo) GetCollaboratorsByBoard(boardID uint) ([]models.Collaborator, error) {
	var out []models.Collaborator
	for key, grant := range r.grants {
		if key.boardID == boardID {
			out = append(out, *grant)
		}
	}
	return out, nil
}

func (r *fakeCollaboratorRepo) DeleteCollaborator(boardID, userID uint) error {
	delete(r.grants, collabKey{boardID, userID})
	return nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, user := range r.users {
		if user.FirebaseUID == firebaseUID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		if strings.Contains(user.Name, query) || strings.Contains(user.Email, query) {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeInvitationRepo struct {
	invitations map[uint]*models.Invitation
	nextID      uint
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[uint]*models.Invitation), nextID: 1}
}

func (r *fakeInvitationRepo) CreateInvitation(invitation *models.Invitation) error {
	for _, existing := range r.invitations {
		if existing.BoardID == invitation.BoardID && existing.ToUserID == invitation.ToUserID &&
			existing.Status == models.InvitationPending {
			return gorm.ErrDuplicatedKey
		}
	}
	invitation.ID = r.nextID
	r.nextID++
	copied := *invitation
	r.invitations[invitation.ID] = &copied
	return nil
}

func (r *fakeInvitationRepo) GetInvitationByID(id uint) (*models.Invitation, error) {
	invitation, ok := r.invitations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *invitation
	return &copied, nil
}

func (r *fakeInvitationRepo) GetPendingInvitation(boardID, toUserID uint) (*models.Invitation, error) {
	for _, invitation := range r.invitations {
		if invitation.BoardID == boardID && invitation.ToUserID == toUserID &&
			invitation.Status == models.InvitationPending {
			copied := *invitation
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvitationRepo) GetPendingByRecipient(toUserID uint, page, limit int) ([]models.Invitation, int64, error) {
	var all []models.Invitation
	for _, invitation := range r.invitations {
		if invitation.ToUserID == toUserID && invitation.Status == models.InvitationPending {
			all = append(all, *invitation)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeInvitationRepo) UpdateInvitation(invitation *models.Invitation) error {
	if _, ok := r.invitations[invitation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *invitation
	r.invitations[invitation.ID] = &copied
	return nil
}

func (r *fakeInvitationRepo) DeleteInvitation(id uint) error {
	if _, ok := r.invitations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.invitations, id)
	return nil
}

type fakeLikeRepo struct {
	likes  []models.Like
	nextID uint
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{nextID: 1}
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	for _, existing := range r.likes {
		if existing.PinID == like.PinID && existing.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = r.nextID
	r.nextID++
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) DeleteLike(pinID string, userID uint) error {
	for i, like := range r.likes {
		if like.PinID == pinID && like.UserID == userID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrLikeNotFound
}

func (r *fakeLikeRepo) HasUserLikedPin(pinID string, userID uint) (bool, error) {
	for _, like := range r.likes {
		if like.PinID == pinID && like.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) GetLikesByUser(userID uint, page, limit int) ([]models.Like, int64, error) {
	var all []models.Like
	for i := len(r.likes) - 1; i >= 0; i-- {
		if r.likes[i].UserID == userID {
			all = append(all, r.likes[i])
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeLikeRepo) GetLikesCountByPinID(pinID string) (int64, error) {
	var count int64
	for _, like := range r.likes {
		if like.PinID == pinID {
			count++
		}
	}
	return count, nil
}

type fakeSavedPinRepo struct {
	saves  []models.SavedPin
	nextID uint
}

func newFakeSavedPinRepo() *fakeSavedPinRepo {
	return &fakeSavedPinRepo{nextID: 1}
}

func (r *fakeSavedPinRepo) CreateSavedPin(savedPin *models.SavedPin) error {
	for _, existing := range r.saves {
		if existing.PinID == savedPin.PinID && existing.UserID == savedPin.UserID &&
			existing.BoardID == savedPin.BoardID {
			return gorm.ErrDuplicatedKey
		}
	}
	savedPin.ID = r.nextID
	r.nextID++
	r.saves = append(r.saves, *savedPin)
	return nil
}

// GetSavedPin returns the most recent save of the pin by the user.
func (r *fakeSavedPinRepo) GetSavedPin(pinID string, userID uint) (*models.SavedPin, error) {
	for i := len(r.saves) - 1; i >= 0; i-- {
		if r.saves[i].PinID == pinID && r.saves[i].UserID == userID {
			copied := r.saves[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrSaveNotFound
}

func (r *fakeSavedPinRepo) DeleteSavedPin(id uint) error {
	for i, save := range r.saves {
		if save.ID == id {
			r.saves = append(r.saves[:i], r.saves[i+1:]...)
			return nil
		}
	}
	return repositories.ErrSaveNotFound
}

func (r *fakeSavedPinRepo) IsPinSaved(userID uint, pinID string) (bool, error) {
	for _, save := range r.saves {
		if save.UserID == userID && save.PinID == pinID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedPinRepo) IsPinSavedToBoard(userID uint, pinID string, boardID uint) (bool, error) {
	for _, save := range r.saves {
		if save.UserID == userID && save.PinID == pinID && save.BoardID == boardID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedPinRepo) GetSavedByUser(userID, boardID uint, page, limit int) ([]models.SavedPin, int64, error) {
	var all []models.SavedPin
	for i := len(r.saves) - 1; i >= 0; i-- {
		save := r.saves[i]
		if save.UserID != userID {
			continue
		}
		if boardID != 0 && save.BoardID != boardID {
			continue
		}
		all = append(all, save)
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeSavedPinRepo) GetSavedPinIDs(userID uint, pinIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool)
	for _, save := range r.saves {
		if save.UserID == userID {
			saved[save.PinID] = true
		}
	}
	out := make(map[string]bool)
	for _, id := range pinIDs {
		if saved[id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakePinRepo struct {
	pins map[string]*models.Pin
	// incErr, when set, fails every counter mutation.
	incErr error
}

func newFakePinRepo() *fakePinRepo {
	return &fakePinRepo{pins: make(map[string]*models.Pin)}
}

func (r *fakePinRepo) CreatePin(_ context.Context, pin *models.Pin) error {
	if pin.ID.IsZero() {
		pin.ID = primitive.NewObjectID()
	}
	copied := *pin
	r.pins[pin.ID.Hex()] = &copied
	return nil
}

func (r *fakePinRepo) GetPinByID(_ context.Context, id string) (*models.Pin, error) {
	pin, ok := r.pins[id]
	if !ok {
		return nil, repositories.ErrPinNotFound
	}
	copied := *pin
	return &copied, nil
}

func (r *fakePinRepo) GetPinsByIDs(_ context.Context, ids []string) ([]models.Pin, error) {
	var out []models.Pin
	for _, id := range ids {
		if pin, ok := r.pins[id]; ok {
			out = append(out, *pin)
		}
	}
	return out, nil
}

func (r *fakePinRepo) GetPinsByBoard(_ context.Context, boardID uint, skip, limit int64) ([]models.Pin, int64, error) {
	var all []models.Pin
	for _, pin := range r.pins {
		if pin.BoardID == boardID {
			all = append(all, *pin)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() > all[j].ID.Hex() })
	total := int64(len(all))
	if skip > int64(len(all)) {
		skip = int64(len(all))
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], total, nil
}

func (r *fakePinRepo) GetAllPins(_ context.Context, skip, limit int64) ([]models.Pin, int64, error) {
	var all []models.Pin
	for _, pin := range r.pins {
		all = append(all, *pin)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() > all[j].ID.Hex() })
	total := int64(len(all))
	if skip > int64(len(all)) {
		skip = int64(len(all))
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], total, nil
}

func (r *fakePinRepo) UpdatePin(_ context.Context, id string, pin *models.Pin) error {
	existing, ok := r.pins[id]
	if !ok {
		return repositories.ErrPinNotFound
	}
	copied := *pin
	copied.ID = existing.ID
	copied.LikesCount = existing.LikesCount
	copied.SavesCount = existing.SavesCount
	r.pins[id] = &copied
	return nil
}

func (r *fakePinRepo) DeletePin(_ context.Context, id string) error {
	if _, ok := r.pins[id]; !ok {
		return repositories.ErrPinNotFound
	}
	delete(r.pins, id)
	return nil
}

func (r *fakePinRepo) IncrementLikesCount(_ context.Context, pinID string) error {
	if r.incErr != nil {
		return r.incErr
	}
	if pin, ok := r.pins[pinID]; ok {
		pin.LikesCount++
	}
	return nil
}

// Decrements floor at zero, matching the conditional update in the store.
func (r *fakePinRepo) DecrementLikesCount(_ context.Context, pinID string) error {
	if pin, ok := r.pins[pinID]; ok && pin.LikesCount > 0 {
		pin.LikesCount--
	}
	return nil
}

func (r *fakePinRepo) IncrementSavesCount(_ context.Context, pinID string) error {
	if r.incErr != nil {
		return r.incErr
	}
	if pin, ok := r.pins[pinID]; ok {
		pin.SavesCount++
	}
	return nil
}

func (r *fakePinRepo) DecrementSavesCount(_ context.Context, pinID string) error {
	if pin, ok := r.pins[pinID]; ok && pin.SavesCount > 0 {
		pin.SavesCount--
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	if r.failCreate {
		return gorm.ErrInvalidDB
	}
	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var all []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].RecipientID == recipientID {
			all = append(all, r.notifications[i])
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByTarget(targetID, notificationType string) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.TargetID == targetID && n.Type == notificationType {
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) byRecipient(recipientID uint) []models.Notification {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}
