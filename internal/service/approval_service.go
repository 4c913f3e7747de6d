package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finflow/internal/model"
	"finflow/internal/repository"
)

// --- DTOs ---

type RejectRequestDTO struct {
	Reason string `json:"reason" binding:"required"`
}

// --- Interface ---

// ApprovalService applies manager/finance decisions to pending requests.
type ApprovalService interface {
	Approve(ctx context.Context, id string, role model.Role) (RequestResponse, error)
	Reject(ctx context.Context, id string, role model.Role, reason string) (RequestResponse, error)
}

type approvalService struct {
	repo   repository.RequestRepository
	hub    EventPublisher
	policy Policy
}

func NewApprovalService(repo repository.RequestRepository, hub EventPublisher, policy Policy) ApprovalService {
	return &approvalService{repo: repo, hub: hub, policy: policy}
}

// --- Implementation ---

func (s *approvalService) Approve(ctx context.Context, id string, role model.Role) (RequestResponse, error) {
	return s.decide(ctx, id, role, DecisionApprove, "")
}

func (s *approvalService) Reject(ctx context.Context, id string, role model.Role, reason string) (RequestResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return RequestResponse{}, model.ErrEmptyRejectionReason
	}
	return s.decide(ctx, id, role, DecisionReject, reason)
}

func (s *approvalService) decide(ctx context.Context, id string, role model.Role, decision Decision, reason string) (RequestResponse, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	next, err := NextStatus(req, role, decision, s.policy)
	if err != nil {
		return RequestResponse{}, err
	}

	// reason travels only on rejections; any earlier reason is cleared.
	if next != model.StatusRejected {
		reason = ""
	}

	// The store re-checks the status it validated against, so a decision
	// that raced with another lands at most once.
	updated, err := s.repo.UpdateStatus(ctx, id, req.Core().Status, next, reason)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return RequestResponse{}, err
		}
		return RequestResponse{}, fmt.Errorf("failed to update request status: %w", err)
	}

	resp := toRequestResponse(updated)
	publish(s.hub, EventRequestUpdated, resp)
	return resp, nil
}
