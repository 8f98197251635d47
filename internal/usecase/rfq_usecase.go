package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CADAttachment is an uploaded drawing accompanying a new RFQ.
type CADAttachment struct {
	Filename string
	Data     []byte
}

// IRFQUseCase exposes the RFQ store operations.

type IRFQUseCase interface {
	Submit(ctx context.Context, owner entities.Identity, spec entities.RFQSpec, cad *CADAttachment) (entities.RFQ, error)
	ListFor(ctx context.Context, owner entities.Identity) ([]entities.RFQ, error)
	GetByID(ctx context.Context, id string, caller entities.Identity) (entities.RFQ, error)
}

type RFQUseCase struct {
	repo    interfaces.IRFQRepository
	files   interfaces.IFileStore
	metrics interfaces.ILifecycleMetrics
	logger  *zap.Logger
}

var _ IRFQUseCase = (*RFQUseCase)(nil)

func NewRFQUseCase(repo interfaces.IRFQRepository, files interfaces.IFileStore, metrics interfaces.ILifecycleMetrics, logger *zap.Logger) *RFQUseCase {
	return &RFQUseCase{repo: repo, files: files, metrics: metricsOrNop(metrics), logger: loggerOrNop(logger)}
}

func (u *RFQUseCase) Submit(ctx context.Context, owner entities.Identity, spec entities.RFQSpec, cad *CADAttachment) (entities.RFQ, error) {
	if err := requireIdentity(owner); err != nil {
		return entities.RFQ{}, err
	}
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return entities.RFQ{}, err
	}

	var cadFilename, cadFileID string
	if cad != nil {
		name := strings.TrimSpace(cad.Filename)
		if !entities.IsSupportedCADFile(name) {
			return entities.RFQ{}, entities.NewValidationError("cad_file", "unsupported file type")
		}
		if u.files == nil {
			return entities.RFQ{}, errors.New("file store not configured")
		}
		handle, err := u.files.Store(ctx, cad.Data, name)
		if err != nil {
			requestLogger(ctx, u.logger).Error("cad upload failed", zap.String("filename", name), zap.Error(err))
			return entities.RFQ{}, fmt.Errorf("store cad file: %w", err)
		}
		cadFilename, cadFileID = name, handle
	}

	r := entities.RFQ{
		ID:            uuid.NewString(),
		UserID:        owner.UserID,
		Material:      spec.Material,
		Quantity:      spec.Quantity,
		Tolerance:     spec.Tolerance,
		Roughness:     spec.Roughness,
		PartMarking:   spec.PartMarking,
		Certification: spec.Certification,
		Notes:         spec.Notes,
		CADFilename:   cadFilename,
		CADFileID:     cadFileID,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		if cadFileID != "" {
			u.discardCAD(ctx, cadFileID)
		}
		return entities.RFQ{}, err
	}
	u.metrics.RFQSubmitted()
	requestLogger(ctx, u.logger).Info("rfq submitted",
		zap.String("rfq_id", created.ID),
		zap.String("user_id", created.UserID),
		zap.String("material", string(created.Material)),
		zap.Int("quantity", created.Quantity),
	)
	return created, nil
}

// discardCAD removes an upload whose RFQ was not written. A failed delete
// leaves the object orphaned, so its handle is logged for cleanup.
func (u *RFQUseCase) discardCAD(ctx context.Context, handle string) {
	if err := u.files.Delete(context.WithoutCancel(ctx), handle); err != nil {
		requestLogger(ctx, u.logger).Error("orphaned cad file",
			zap.String("cad_file_id", handle),
			zap.Error(err),
		)
	}
}

func (u *RFQUseCase) ListFor(ctx context.Context, owner entities.Identity) ([]entities.RFQ, error) {
	if err := requireIdentity(owner); err != nil {
		return nil, err
	}
	items, err := u.repo.ListByUserID(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	visible := make([]entities.RFQ, 0, len(items))
	for _, r := range items {
		if entities.CanView(r, owner) {
			visible = append(visible, r)
		}
	}
	sortRFQsNewestFirst(visible)
	return visible, nil
}

func (u *RFQUseCase) GetByID(ctx context.Context, id string, caller entities.Identity) (entities.RFQ, error) {
	if err := requireIdentity(caller); err != nil {
		return entities.RFQ{}, err
	}
	id, err := requireID("rfq_id", id)
	if err != nil {
		return entities.RFQ{}, err
	}

	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.RFQ{}, err
	}
	if r.ID == "" || !entities.CanView(r, caller) {
		return entities.RFQ{}, entities.NewNotFoundError("rfq", id)
	}
	return r, nil
}
