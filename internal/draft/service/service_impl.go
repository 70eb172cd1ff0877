package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkbill/inkbill/internal/config"
	draftdomain "github.com/inkbill/inkbill/internal/draft/domain"
	invoicedomain "github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/format"
	"github.com/inkbill/inkbill/pkg/db"
	"github.com/inkbill/inkbill/pkg/repository"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID          *snowflake.Node
	numberTemplate string
	draftrepo      repository.Repository[draftdomain.Draft]
}

func NewService(p ServiceParam) draftdomain.Service {
	template := strings.TrimSpace(p.Cfg.NumberTemplate)
	if template == "" {
		template = format.DefaultNumberTemplate
	}
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("draft.service"),
		genID:          p.GenID,
		numberTemplate: template,
		draftrepo:      repository.ProvideStore[draftdomain.Draft](p.DB),
	}
}

// AutoMigrate creates the drafts table. Invoked from the fx module on
// startup.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&draftdomain.Draft{})
}

func (s *Service) Save(ctx context.Context, inv invoicedomain.Invoice) (*draftdomain.Draft, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(inv.Number) == "" {
		number, err := s.nextNumber(ctx, inv)
		if err != nil {
			return nil, err
		}
		inv.Number = number
	}

	payload, err := json.Marshal(inv)
	if err != nil {
		return nil, err
	}

	draft := &draftdomain.Draft{
		ID:            s.genID.Generate(),
		InvoiceNumber: inv.Number,
		Currency:      inv.Currency,
		Payload:       payload,
	}
	if err := s.draftrepo.Create(ctx, draft); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, draftdomain.ErrDuplicateNumber
		}
		return nil, err
	}

	s.log.Info("draft saved",
		zap.String("draft_id", draft.ID.String()),
		zap.String("invoice_number", draft.InvoiceNumber),
	)
	return draft, nil
}

func (s *Service) Update(ctx context.Context, id string, inv invoicedomain.Invoice) (*draftdomain.Draft, error) {
	draftID, err := parseID(id)
	if err != nil {
		return nil, draftdomain.ErrInvalidID
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.draftrepo.FindOne(ctx, &draftdomain.Draft{ID: draftID})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, draftdomain.ErrNotFound
	}

	if strings.TrimSpace(inv.Number) == "" {
		inv.Number = existing.InvoiceNumber
	}
	payload, err := json.Marshal(inv)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"invoice_number": inv.Number,
		"currency":       inv.Currency,
		"payload":        payload,
		"updated_at":     time.Now().UTC(),
	}
	if err := s.draftrepo.Update(ctx, draftID.String(), updates); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, draftdomain.ErrDuplicateNumber
		}
		return nil, err
	}
	return s.draftrepo.FindOne(ctx, &draftdomain.Draft{ID: draftID})
}

func (s *Service) Get(ctx context.Context, id string) (*draftdomain.Draft, invoicedomain.Invoice, error) {
	draftID, err := parseID(id)
	if err != nil {
		return nil, invoicedomain.Invoice{}, draftdomain.ErrInvalidID
	}

	draft, err := s.draftrepo.FindOne(ctx, &draftdomain.Draft{ID: draftID})
	if err != nil {
		return nil, invoicedomain.Invoice{}, err
	}
	if draft == nil {
		return nil, invoicedomain.Invoice{}, draftdomain.ErrNotFound
	}

	var inv invoicedomain.Invoice
	if err := json.Unmarshal(draft.Payload, &inv); err != nil {
		return nil, invoicedomain.Invoice{}, err
	}
	return draft, inv, nil
}

func (s *Service) List(ctx context.Context) ([]*draftdomain.Draft, error) {
	return s.draftrepo.Find(ctx, &draftdomain.Draft{})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	draftID, err := parseID(id)
	if err != nil {
		return draftdomain.ErrInvalidID
	}
	existing, err := s.draftrepo.FindOne(ctx, &draftdomain.Draft{ID: draftID})
	if err != nil {
		return err
	}
	if existing == nil {
		return draftdomain.ErrNotFound
	}
	return s.draftrepo.Delete(ctx, draftID.String())
}

// nextNumber assigns the next invoice number from the monotonic draft
// count. Collisions after deletes surface as ErrDuplicateNumber and the
// caller can retry with an explicit number.
func (s *Service) nextNumber(ctx context.Context, inv invoicedomain.Invoice) (string, error) {
	count, err := s.draftrepo.Count(ctx, &draftdomain.Draft{})
	if err != nil {
		return "", err
	}
	issued := inv.IssueDate.Time
	if inv.IssueDate.IsZero() {
		issued = time.Now().UTC()
	}
	return format.InvoiceNumber(s.numberTemplate, issued, count+1)
}

func parseID(id string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(id))
}
