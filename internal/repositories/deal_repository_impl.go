package repositories

import (
	"errors"
	"fmt"
	"time"

	"bazaar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(deal *models.Deal) error {
	if err := r.db.Create(deal).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateDeal
		}
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (r *dealRepository) GetByID(id string) (*models.Deal, error) {
	var deal models.Deal
	err := withReadRetry("get deal", id, func() error {
		return r.db.Where("id = ?", id).First(&deal).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &deal, nil
}

func (r *dealRepository) GetByIDForUpdate(id string) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &deal, nil
}

func (r *dealRepository) GetByPostID(postID string) (*models.Deal, error) {
	var deal models.Deal
	err := withReadRetry("get deal by post", postID, func() error {
		return r.db.Where("post_id = ? AND status <> ?", postID, models.DealStatusCancelled).
			First(&deal).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &deal, nil
}

func (r *dealRepository) Update(deal *models.Deal) error {
	if err := r.db.Save(deal).Error; err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	return nil
}

func (r *dealRepository) GetPostForUpdate(postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *dealRepository) SetPostStatus(postID, status string) error {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update post status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *dealRepository) CreateOTP(otp *models.OTP) error {
	if err := r.db.Create(otp).Error; err != nil {
		return fmt.Errorf("failed to create otp: %w", err)
	}
	return nil
}

func (r *dealRepository) ReplaceOTP(otp *models.OTP) error {
	err := r.db.Where("deal_id = ?", otp.DealID).Delete(&models.OTP{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove previous otp: %w", err)
	}
	return r.CreateOTP(otp)
}

func (r *dealRepository) GetOTPByDealID(dealID string, forUpdate bool) (*models.OTP, error) {
	query := r.db
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var otp models.OTP
	if err := query.Where("deal_id = ?", dealID).First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}
	return &otp, nil
}

func (r *dealRepository) MarkOTPUsed(otpID string) (bool, error) {
	// Conditional update so two concurrent validations cannot both win:
	// exactly one call flips the flag, the other sees zero rows affected.
	result := r.db.Model(&models.OTP{}).
		Where("id = ? AND used = ?", otpID, false).
		Update("used", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark otp used: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *dealRepository) DeleteExpiredOTPs(before time.Time) (int64, error) {
	result := r.db.Where("used = ? AND expires_at < ?", false, before).
		Delete(&models.OTP{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *dealRepository) ExecuteInTransaction(fn func(DealRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&dealRepository{db: tx})
	})
}
