package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/ledger"
	"github.com/mmynk/splitpay/internal/middleware"
)

// GroupService exposes group creation and membership over Connect.
type GroupService struct {
	registry *ledger.Registry
}

// NewGroupService creates a GroupService over the given registry.
func NewGroupService(registry *ledger.Registry) *GroupService {
	return &GroupService{registry: registry}
}

// CreateGroup creates a new group with the given members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	groupID, err := s.registry.CreateGroup(ctx, req.Msg.Members)
	if err != nil {
		slog.Error("CreateGroup failed", "user_id", userID, "error", err)
		return nil, ledgerError(err)
	}

	slog.Info("Group created", "group_id", groupID, "members_count", len(req.Msg.Members))
	return connect.NewResponse(&CreateGroupResponse{GroupId: groupID}), nil
}

// AddMember appends a member to an existing group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	if err := s.registry.AddMember(ctx, req.Msg.GroupId, req.Msg.Member); err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, ledgerError(err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupId, "member", req.Msg.Member)
	return connect.NewResponse(&AddMemberResponse{}), nil
}

// RemoveMember removes a member whose balance is settled.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	if err := s.registry.RemoveMember(ctx, req.Msg.GroupId, req.Msg.Member); err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupId, "member", req.Msg.Member, "error", err)
		return nil, ledgerError(err)
	}

	slog.Info("Member removed", "group_id", req.Msg.GroupId, "member", req.Msg.Member)
	return connect.NewResponse(&RemoveMemberResponse{}), nil
}

// GetGroupMembers returns a group's ordered member list.
func (s *GroupService) GetGroupMembers(ctx context.Context, req *connect.Request[GetGroupMembersRequest]) (*connect.Response[GetGroupMembersResponse], error) {
	members, err := s.registry.GroupMembers(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&GetGroupMembersResponse{Members: members}), nil
}

// GetMemberGroups returns the groups a member belongs to; with no member
// in the request, the caller's own groups.
func (s *GroupService) GetMemberGroups(ctx context.Context, req *connect.Request[GetMemberGroupsRequest]) (*connect.Response[GetMemberGroupsResponse], error) {
	member := req.Msg.Member
	if member == "" {
		member = middleware.GetUserID(ctx)
	}
	if member == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member required"))
	}

	groups, err := s.registry.MemberGroups(ctx, member)
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&GetMemberGroupsResponse{GroupIds: groups}), nil
}
