package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")

	ErrPartnerNotFound       = errors.New("partner not found")
	ErrPartnerProfileExists  = errors.New("partner profile already exists for this user")
	ErrPartnerNotApproved    = errors.New("partner is not approved")
	ErrInquiryNotFound       = errors.New("inquiry not found")
	ErrNotInquiryOwner       = errors.New("not authorized for this inquiry")
	ErrNotAssigned           = errors.New("partner is not assigned to this inquiry")
	ErrInvalidStatus         = errors.New("invalid inquiry status")
	ErrInquiryClosed         = errors.New("inquiry is in a terminal status")
	ErrPortfolioNotFound     = errors.New("portfolio not found")
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
	ErrReviewNotFound        = errors.New("review not found")
	ErrNotReviewRecipient    = errors.New("review does not belong to this partner")
	ErrAlreadyReviewed       = errors.New("booking already reviewed")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrDuplicateSlug         = errors.New("category slug already exists")
	ErrLocationNotFound      = errors.New("location not found")
	ErrDuplicateLocation     = errors.New("location already exists")
	ErrInvalidBudget         = errors.New("budget max is below budget min")
	ErrInvalidCategory       = errors.New("unknown service category")
)
