package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.Authorizer = (*Authorizer)(nil)

const moderatorPermissions = discordgo.PermissionAdministrator | discordgo.PermissionManageMessages

// Authorizer treats guild owners, members whose roles grant Administrator or
// Manage Messages, and members holding a configured role as moderators.
type Authorizer struct {
	session        *discordgo.Session
	moderatorRoles map[string]bool
}

func NewAuthorizer(session *discordgo.Session, moderatorRoleIDs []string) *Authorizer {
	roles := make(map[string]bool, len(moderatorRoleIDs))
	for _, id := range moderatorRoleIDs {
		roles[id] = true
	}
	return &Authorizer{session: session, moderatorRoles: roles}
}

func (a *Authorizer) IsModerator(ctx context.Context, userID string, scope entities.Scope) (bool, error) {
	guild, err := a.guild(ctx, scope.GuildID)
	if err != nil {
		return false, fmt.Errorf("get guild %s: %w", scope.GuildID, err)
	}
	if guild.OwnerID == userID {
		return true, nil
	}
	member, err := a.member(ctx, scope.GuildID, userID)
	if err != nil {
		return false, fmt.Errorf("get member %s: %w", userID, err)
	}
	return memberIsModerator(guild, member, a.moderatorRoles), nil
}

func (a *Authorizer) guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if g, err := a.session.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g, nil
	}
	return a.session.Guild(guildID, discordgo.WithContext(ctx))
}

func (a *Authorizer) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if m, err := a.session.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return a.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
}

func memberIsModerator(guild *discordgo.Guild, member *discordgo.Member, moderatorRoles map[string]bool) bool {
	if guild == nil || member == nil {
		return false
	}
	if member.User != nil && member.User.ID == guild.OwnerID {
		return true
	}
	guildRoles := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, role := range guild.Roles {
		guildRoles[role.ID] = role
	}
	for _, roleID := range member.Roles {
		if moderatorRoles[roleID] {
			return true
		}
		if role, ok := guildRoles[roleID]; ok && role.Permissions&moderatorPermissions != 0 {
			return true
		}
	}
	// @everyone shares the guild's id and is not listed in member.Roles.
	if everyone, ok := guildRoles[guild.ID]; ok && everyone.Permissions&moderatorPermissions != 0 {
		return true
	}
	return false
}
