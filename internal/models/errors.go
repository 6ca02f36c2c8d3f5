package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrRuleNeedsExactlyOneParent = errors.New("a budget rule must belong to either a purpose or a category")
	ErrRuleCustomMonthsInvalid   = errors.New("a rule with a custom interval needs a cadence of at least one month")
	ErrRuleDatesInverted         = errors.New("the start date of a rule must not be after its end date")
	ErrRuleLevelConflict         = errors.New("a category and its purposes must not carry rules at the same time")
	ErrPurposeSourceInvalid      = errors.New("the purpose source type must be CONTACT, CONTACT_GROUP or SAVINGS_PLAN")
	ErrOverrideMonthNotUnique    = errors.New("you can not create multiple overrides for the same purpose and month")
	ErrPostingKindInvalid        = errors.New("the posting kind must be CONTACT, SAVINGS_PLAN or OTHER")
	ErrPostingReferenceMissing   = errors.New("a posting must reference the entity matching its kind")
)
