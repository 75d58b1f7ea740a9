package postgres

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/graph"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type User struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"not null"`
	Img  string
}

type Association struct {
	gorm.Model
	FromID int64 `gorm:"index:noDuplicateAssociations,unique;"`
	ToID   int64 `gorm:"index:noDuplicateAssociations,unique;"`
	From   User  `gorm:"constraint:OnDelete:CASCADE;not null"`
	To     User  `gorm:"constraint:OnDelete:CASCADE;not null"`
}

func NewPostgresDB(conf db.Config) (*PostgresDB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			conf.PGHost, conf.PGUser, conf.PGPassword, conf.PGDatabase, conf.PGPort),
	}), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}
	pg := &PostgresDB{
		db: db,
	}
	return pg.init()
}

type PostgresDB struct {
	db *gorm.DB
}

func (pg *PostgresDB) init() (*PostgresDB, error) {
	return pg, pg.db.AutoMigrate(&User{}, &Association{})
}

func (pg *PostgresDB) Associations(ctx context.Context) ([]graph.Association, error) {
	assocs := []Association{}
	err := pg.db.WithContext(ctx).Preload("From").Preload("To").Order("id").Find(&assocs).Error
	if err != nil {
		return nil, errors.Wrap(err, "load associations")
	}
	log.Debug().Msgf("loaded %d associations from postgres", len(assocs))
	return ToGraph(assocs), nil
}

// CreateAssociations stores the given pairs. Known users are updated in
// place, known pairs are left untouched.
func (pg *PostgresDB) CreateAssociations(ctx context.Context, assocs []graph.Association) error {
	users, pairs := FromGraph(assocs)
	if len(users) == 0 {
		return nil
	}
	return pg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "img"}),
		}).Create(&users).Error
		if err != nil {
			return errors.Wrapf(err, "upsert %d users", len(users))
		}
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&pairs).Error
		return errors.Wrapf(err, "create %d associations", len(pairs))
	})
}

func (pg *PostgresDB) Close() error {
	sqlDB, err := pg.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
