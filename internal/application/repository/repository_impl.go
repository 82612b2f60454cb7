package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpoint/interconnect/internal/application/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func withJoins(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Customer.Account").
		Preload("Customer.Premise").
		Preload("Installer").
		Preload("System").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at desc, history_id desc")
		})
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Application, error) {
	var applications []domain.Application
	err := withJoins(db.WithContext(ctx)).
		Order("created_at desc, ix_application_id desc").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Application, error) {
	var application domain.Application
	err := withJoins(db.WithContext(ctx)).
		First(&application, "ix_application_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, application *domain.Application) error {
	return db.WithContext(ctx).Create(application).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("ix_application_id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Delete(&domain.Application{}, "ix_application_id = ?", id).Error
}
