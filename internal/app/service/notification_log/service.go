package notification_log

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/tool"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	wg  sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a webhook delivery log. Nil input is ignored.
// The write is detached from ctx cancellation so it survives the request.
func (s *Service) Save(ctx context.Context, entry *models.PaymentNotificationLog) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	if entry.TraceID == "" {
		entry.TraceID = logctx.TraceID(ctx)
	}
	l := logctx.FromCtx(ctx, s.log)
	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.db.WithContext(bg).Create(entry).Error; err != nil {
			l.Errorw("failed to save notification log", "transaction_id", entry.TransactionID, "err", err)
		}
	}()
}

// Wait blocks until pending Save calls have finished.
func (s *Service) Wait() { s.wg.Wait() }

// ResultJSON marshals a handling result for the log's result column.
func ResultJSON(v any) *datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	j := datatypes.JSON(b)
	return &j
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Service) {
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			s.Wait()
			return nil
		}})
	}),
)
