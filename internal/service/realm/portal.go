package realm

import (
	"context"
	"errors"
	"time"

	"helheim/internal/domain"
)

// OpenPortal provisions a game server for the realm and persists the portal
// row. The realm moves CLOSED -> OPEN; at most one portal row may exist per
// realm. The single-portal check is check-then-act: two concurrent opens can
// both pass it, the store offers no conditional write here.
func (s *Service) OpenPortal(ctx context.Context, realmGUID, userGUID string, req domain.CreateRealmPortal) (*domain.RealmPortal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	realm, err := s.repo.GetRealm(ctx, realmGUID)
	if err != nil {
		return nil, err
	}

	opened, err := s.repo.ListPortals(ctx, realm.GUID)
	if err != nil {
		return nil, err
	}
	if len(opened) > 0 {
		return nil, domain.ErrValidation("a portal is already open to this world")
	}

	if len(req.Password) < domain.MinPortalPasswordLength {
		return nil, domain.ErrValidation("the provided password is too short")
	}

	// Synchronous request/response call. On failure no portal row is
	// written and the realm stays CLOSED; the call is not retried here.
	result, err := s.provisioner.Provision(ctx, domain.ProvisionRequest{
		RealmGUID:  realmGUID,
		ServerName: req.Name,
		WorldName:  req.WorldName,
		Password:   req.Password,
		Preset:     req.Preset,
		Modifiers:  req.Modifiers,
		Keys:       req.Keys,
	})
	if err != nil {
		return nil, err
	}

	portal := &domain.RealmPortal{
		GUID:             domain.NewID(),
		RealmGUID:        realmGUID,
		OpenedByUserGUID: userGUID,
		InstanceID:       result.InstanceID,
		SpotRequestID:    result.SpotRequestID,
		Name:             result.Config.ServerName,
		WorldName:        result.Config.WorldName,
		Password:         req.Password,
		PublicAddress:    result.PublicIPAddress,
		Region:           result.Region,
		InstanceType:     result.InstanceType,
		Status:           result.Status,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.PutPortal(ctx, portal); err != nil {
		return nil, err
	}

	s.logger.Info("portal opened",
		"realm", realmGUID, "portal", portal.GUID, "instance", portal.InstanceID)
	return portal, nil
}

// ClosePortal tears the portal down: terminate the instance, cancel the spot
// request, delete the portal row. The three calls share no transaction. The
// external calls run before the delete so a failed delete leaves the row in
// place for a retry to find; the delete is attempted even when a backend call
// fails, and those failures are still reported so an operator can reconcile.
// The instance and spot request ids are trusted as supplied by the caller.
func (s *Service) ClosePortal(ctx context.Context, realmGUID string, req domain.CloseRealmPortal) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var backendErrs []error
	if err := s.compute.TerminateInstance(ctx, req.InstanceID); err != nil {
		s.logger.Error("instance termination failed",
			"realm", realmGUID, "instance", req.InstanceID, "error", err)
		backendErrs = append(backendErrs, err)
	}
	if err := s.compute.CancelSpotRequest(ctx, req.SpotRequestID); err != nil {
		s.logger.Error("spot request cancellation failed",
			"realm", realmGUID, "spot_request", req.SpotRequestID, "error", err)
		backendErrs = append(backendErrs, err)
	}

	if err := s.repo.DeletePortal(ctx, realmGUID, req.PortalGUID); err != nil {
		backendErrs = append(backendErrs, err)
	}

	if len(backendErrs) > 0 {
		return domain.ErrBackend(errors.Join(backendErrs...), "portal teardown incomplete for realm %s", realmGUID)
	}

	s.logger.Info("portal closed", "realm", realmGUID, "portal", req.PortalGUID)
	return nil
}
