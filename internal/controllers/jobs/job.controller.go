package jobController

import (
	"context"
	"fmt"
	"strings"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"
	"renhold/internal/sanitize"

	"github.com/google/uuid"
)

type AddImageRequest struct {
	ImageType string `json:"imageType" validate:"required"`
	ImageURL  string `json:"imageUrl"  validate:"required"`
}

type AddMessageRequest struct {
	Message     string `json:"message" validate:"required"`
	MessageType string `json:"messageType,omitempty"`
}

type JobControllerInterface interface {
	AddImage(ctx context.Context, actor *User, bookingID uuid.UUID, request *AddImageRequest) (*JobImage, error)
	GetImages(ctx context.Context, actor *User, bookingID uuid.UUID) ([]JobImage, error)
	DeleteImage(ctx context.Context, actor *User, imageID uuid.UUID) error
	AddMessage(ctx context.Context, actor *User, bookingID uuid.UUID, request *AddMessageRequest) (*JobMessage, error)
	GetMessages(ctx context.Context, actor *User, bookingID uuid.UUID) ([]JobMessage, error)
	MarkMessagesRead(ctx context.Context, actor *User, bookingID uuid.UUID) error
}

type JobController struct {
	jobRepo     repositories.JobRepository
	bookingRepo repositories.BookingRepository
	log         logger.Logger
}

func New(repos repositories.Repository) JobControllerInterface {
	return &JobController{
		jobRepo:     repos.Job,
		bookingRepo: repos.Booking,
		log:         logger.New("jobController"),
	}
}

// access resolves the booking through the caller's scope, so customers can
// only reach images and messages on their own bookings.
func (c *JobController) access(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	scope := repositories.Scope{UserID: actor.ID, Employee: actor.IsEmployee()}
	booking, err := c.bookingRepo.GetByID(ctx, scope, bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return booking, nil
}

func (c *JobController) AddImage(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
	request *AddImageRequest,
) (*JobImage, error) {
	log := c.log.Function("AddImage")

	if !actor.IsEmployee() {
		return nil, apperrors.ErrPermissionDenied
	}

	imageType := ImageType(request.ImageType)
	if !imageType.Valid() {
		return nil, fmt.Errorf(
			"%w: image type must be before or after",
			apperrors.ErrValidation,
		)
	}

	imageURL := strings.TrimSpace(request.ImageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image url is required", apperrors.ErrValidation)
	}

	booking, err := c.access(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusInProgress {
		return nil, fmt.Errorf(
			"%w: images can only be added while the job is in progress",
			apperrors.ErrValidation,
		)
	}

	image := JobImage{
		BookingID:  booking.ID,
		ImageType:  imageType,
		ImageURL:   imageURL,
		UploadedBy: actor.ID,
	}

	if err := c.jobRepo.AddImage(ctx, &image); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Job image added", "bookingID", booking.ID, "imageType", imageType)
	return &image, nil
}

func (c *JobController) GetImages(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) ([]JobImage, error) {
	booking, err := c.access(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	images, err := c.jobRepo.GetImages(ctx, booking.ID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return images, nil
}

// DeleteImage removes an image. The uploader-scoped delete means anyone
// else's attempt reads as not found.
func (c *JobController) DeleteImage(
	ctx context.Context,
	actor *User,
	imageID uuid.UUID,
) error {
	log := c.log.Function("DeleteImage")

	if err := c.jobRepo.DeleteImage(ctx, actor.ID, imageID); err != nil {
		return apperrors.FromDatabase(err)
	}

	log.Info("Job image deleted", "imageID", imageID, "actorID", actor.ID)
	return nil
}

func (c *JobController) AddMessage(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
	request *AddMessageRequest,
) (*JobMessage, error) {
	log := c.log.Function("AddMessage")

	text := sanitize.Notes(request.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", apperrors.ErrValidation)
	}

	messageType := MessageText
	if request.MessageType != "" {
		messageType = MessageType(request.MessageType)
		if !messageType.Valid() {
			return nil, fmt.Errorf(
				"%w: unknown message type %q",
				apperrors.ErrValidation,
				request.MessageType,
			)
		}
	}

	booking, err := c.access(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	fromEmployee := actor.IsEmployee()
	message := JobMessage{
		BookingID:      booking.ID,
		SenderID:       actor.ID,
		Message:        text,
		MessageType:    messageType,
		ReadByCustomer: !fromEmployee,
		ReadByEmployee: fromEmployee,
	}

	if err := c.jobRepo.AddMessage(ctx, &message); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Job message added", "bookingID", booking.ID, "senderID", actor.ID)
	return &message, nil
}

func (c *JobController) GetMessages(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) ([]JobMessage, error) {
	log := c.log.Function("GetMessages")

	booking, err := c.access(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	messages, err := c.jobRepo.GetMessages(ctx, booking.ID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	// Reading the thread clears the caller's unread flag.
	if err := c.jobRepo.MarkMessagesRead(ctx, booking.ID, actor.IsEmployee()); err != nil {
		log.Warn("failed to mark messages read", "bookingID", booking.ID, "error", err)
	}

	return messages, nil
}

func (c *JobController) MarkMessagesRead(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) error {
	booking, err := c.access(ctx, actor, bookingID)
	if err != nil {
		return err
	}

	if err := c.jobRepo.MarkMessagesRead(ctx, booking.ID, actor.IsEmployee()); err != nil {
		return apperrors.FromDatabase(err)
	}

	return nil
}
