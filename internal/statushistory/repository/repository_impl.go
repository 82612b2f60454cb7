package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpoint/interconnect/internal/statushistory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, db *gorm.DB, entry *domain.Entry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListByApplication(ctx context.Context, db *gorm.DB, applicationID snowflake.ID) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := db.WithContext(ctx).
		Where("ix_application_id = ?", applicationID).
		Order("changed_at desc, history_id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) DeleteByApplication(ctx context.Context, db *gorm.DB, applicationID snowflake.ID) error {
	return db.WithContext(ctx).
		Delete(&domain.Entry{}, "ix_application_id = ?", applicationID).Error
}
