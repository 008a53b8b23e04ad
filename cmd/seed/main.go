// Seed наполняет базу демонстрационными салонами, мастерами, услугами и выходными
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/migrator"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	leaveRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var serviceNames = []string{
	"Женская стрижка",
	"Мужская стрижка",
	"Окрашивание",
	"Укладка",
	"Маникюр",
	"Педикюр",
	"Коррекция бровей",
	"Уход за волосами",
}

type seeder struct {
	catalog  *catalogRepo.Repository
	schedule *scheduleRepo.Repository
	leaves   *leaveRepo.Repository
	tx       *txmanager.TransactionManager
	log      *logger.Logger
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	units := flag.Int("units", 3, "number of units")
	professionals := flag.Int("professionals", 4, "professionals per unit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rawDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	db := dbmetrics.Wrap(rawDB, nil)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	m, err := migrator.New(rawDB, migrations.FS, log)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := m.Up(ctx); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	s := &seeder{
		catalog:  catalogRepo.NewRepository(db),
		schedule: scheduleRepo.NewRepository(db),
		leaves:   leaveRepo.NewRepository(db),
		tx:       txmanager.NewTransactionManager(db),
		log:      log,
	}

	for i := 0; i < *units; i++ {
		// Каждый салон в своей транзакции
		err := s.tx.Do(ctx, func(ctx context.Context) error {
			return s.seedUnit(ctx, *professionals)
		})
		if err != nil {
			log.Fatal("Failed to seed unit %d: %v", i+1, err)
		}
	}

	log.Info("Seed complete: units=%d, professionals_per_unit=%d", *units, *professionals)
}

func (s *seeder) seedUnit(ctx context.Context, professionals int) error {
	unitID, err := s.catalog.CreateUnit(ctx, gofakeit.Company())
	if err != nil {
		return err
	}

	granularity := domain.AllowedGranularities[gofakeit.Number(0, len(domain.AllowedGranularities)-1)]
	if _, err := s.schedule.UpsertUnitSettings(ctx, &domain.UnitSettings{
		UnitID:                  unitID,
		SlotGranularityMinutes:  granularity,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}); err != nil {
		return err
	}

	if err := s.schedule.ReplaceOperatingPeriods(ctx, unitID, weekSchedule(unitID)); err != nil {
		return err
	}

	for _, name := range serviceNames {
		svc := &domain.Service{UnitID: unitID, Name: name, IsActive: true}
		// Часть услуг без длительности или цены, чтобы были видны значения по умолчанию
		if gofakeit.Number(1, 10) > 1 {
			svc.DurationMinutes = ptr.Ptr(gofakeit.Number(1, 6) * 15)
		}
		if gofakeit.Number(1, 10) > 2 {
			svc.Price = ptr.Ptr(gofakeit.Price(15, 120))
		}
		if _, err := s.catalog.CreateService(ctx, svc); err != nil {
			return err
		}
	}

	for i := 0; i < professionals; i++ {
		p, err := s.catalog.CreateProfessional(ctx, &domain.Professional{
			UnitID:   unitID,
			Name:     gofakeit.Name(),
			IsActive: true,
		})
		if err != nil {
			return err
		}
		if err := s.seedLeaves(ctx, p.ID); err != nil {
			return err
		}
	}

	s.log.Info("Seeded unit id=%d (granularity=%d, professionals=%d)", unitID, granularity, professionals)
	return nil
}

// seedLeaves добавляет мастеру еженедельный выходной и один разовый выходной на утро
func (s *seeder) seedLeaves(ctx context.Context, professionalID int64) error {
	weekday := time.Weekday(gofakeit.Number(1, 6))
	if _, err := s.leaves.Create(ctx, &domain.LeavePeriod{
		ProfessionalID: professionalID,
		Weekday:        &weekday,
		Morning:        true,
		Afternoon:      true,
		Evening:        true,
		Reason:         ptr.Ptr("выходной"),
	}); err != nil {
		return err
	}

	date := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, gofakeit.Number(1, 30))
	_, err := s.leaves.Create(ctx, &domain.LeavePeriod{
		ProfessionalID: professionalID,
		Date:           &date,
		Morning:        true,
		Reason:         ptr.Ptr(gofakeit.RandomString([]string{"врач", "обучение", "личные дела"})),
	})
	return err
}

// weekSchedule открывает понедельник-субботу: утро 08-12, день 13-17, вечер 18-21 (кроме субботы)
func weekSchedule(unitID int64) []*domain.OperatingPeriod {
	window := func(from, to string) (*types.TimeString, *types.TimeString) {
		open, closeTime := types.MustTimeString(from), types.MustTimeString(to)
		return &open, &closeTime
	}

	periods := make([]*domain.OperatingPeriod, 0, 21)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		for _, p := range domain.AllPeriods {
			op := &domain.OperatingPeriod{UnitID: unitID, Weekday: wd, Period: p}
			open := wd != time.Sunday && !(wd == time.Saturday && p == domain.PeriodEvening)
			if open {
				op.IsOpen = true
				switch p {
				case domain.PeriodMorning:
					op.OpenTime, op.CloseTime = window("08:00", "12:00")
				case domain.PeriodAfternoon:
					op.OpenTime, op.CloseTime = window("13:00", "17:00")
				case domain.PeriodEvening:
					op.OpenTime, op.CloseTime = window("18:00", "21:00")
				}
			}
			periods = append(periods, op)
		}
	}
	return periods
}
