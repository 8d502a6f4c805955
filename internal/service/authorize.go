package service

import "github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/apperr"

// Authorize is the ownership gate shared by the user and account managers:
// a principal may act on a resource only when it is the recorded owner.
// Fails closed: an empty owner or principal is always denied.
func Authorize(resourceOwnerID, principalID string) error {
	if resourceOwnerID == "" || principalID == "" {
		return apperr.Forbidden("access denied")
	}
	if resourceOwnerID != principalID {
		return apperr.Forbidden("access denied")
	}
	return nil
}
