package migration

import (
	"context"
	"time"

	actordomain "github.com/agrilinklabs/agrilink/internal/actor/domain"
	blogdomain "github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/agrilinklabs/agrilink/internal/config"
	documentdomain "github.com/agrilinklabs/agrilink/internal/document/domain"
	linkdomain "github.com/agrilinklabs/agrilink/internal/link/domain"
	missiondomain "github.com/agrilinklabs/agrilink/internal/mission/domain"
	notificationdomain "github.com/agrilinklabs/agrilink/internal/notification/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/agrilinklabs/agrilink/internal/ratelimit"
	"github.com/agrilinklabs/agrilink/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedLockTTL = 30 * time.Second

type params struct {
	fx.In

	Conn    *gorm.DB
	Cfg     config.Config
	Log     *zap.Logger
	Limiter *ratelimit.QuoteLimiter `optional:"true"`
}

var Module = fx.Module("migrations",
	fx.Invoke(func(p params) error {
		if p.Cfg.DBType == "postgres" {
			sqlDB, err := p.Conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are dev conveniences; let gorm build the
			// schema from the models.
			if err := p.Conn.AutoMigrate(
				&ruledomain.PricingRule{},
				&actordomain.Actor{},
				&missiondomain.Mission{},
				&documentdomain.Document{},
				&blogdomain.Post{},
				&notificationdomain.Notification{},
				&linkdomain.Link{},
			); err != nil {
				return err
			}
		}

		return seedPricingRules(p)
	}),
)

// seedPricingRules coordinates across replicas through the shared redis
// locker when one is configured; without it the empty-table check is the
// only guard, which is fine for a single instance.
func seedPricingRules(p params) error {
	locker := p.Limiter.SharedLocker()
	if locker == nil {
		return seed.EnsurePricingRules(p.Conn)
	}

	ctx := context.Background()
	token, ok, err := locker.TryLock(ctx, "seed:pricing_rules", seedLockTTL)
	if err != nil {
		return err
	}
	if !ok {
		p.Log.Info("pricing rule seed skipped: another replica holds the lock")
		return nil
	}
	defer func() {
		if err := locker.Release(ctx, "seed:pricing_rules", token); err != nil {
			p.Log.Warn("release seed lock", zap.Error(err))
		}
	}()

	return seed.EnsurePricingRules(p.Conn)
}
