package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
)

// Client grants and revokes premium roles in the Discord server. Only the
// REST surface is used; the bot never opens a gateway connection.
type Client struct {
	session        *discordgo.Session
	guildID        string
	monthlyRoleID  string
	lifetimeRoleID string
}

func New(token, guildID, monthlyRoleID, lifetimeRoleID string) (*Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &Client{
		session:        s,
		guildID:        guildID,
		monthlyRoleID:  monthlyRoleID,
		lifetimeRoleID: lifetimeRoleID,
	}, nil
}

func (c *Client) roleID(plan model.Plan) (string, error) {
	switch plan {
	case model.PlanMonthly:
		return c.monthlyRoleID, nil
	case model.PlanLifetime:
		return c.lifetimeRoleID, nil
	default:
		return "", fmt.Errorf("%w: no role for plan %v", model.InvalidInputErr, plan)
	}
}

// GrantRole assigns the role of the plan to the user. The bot must be in
// the server, hold Manage Roles, and sit above the granted role.
func (c *Client) GrantRole(userID string, plan model.Plan) error {
	roleID, err := c.roleID(plan)
	if err != nil {
		return err
	}
	if err := c.session.GuildMemberRoleAdd(c.guildID, userID, roleID); err != nil {
		return fmt.Errorf("%w: grant %v role to %v: %v", model.UpstreamErr, plan, userID, err)
	}
	log.Info("granted %v role to discord user %v", plan, userID)
	return nil
}

func (c *Client) RevokeRole(userID string, plan model.Plan) error {
	roleID, err := c.roleID(plan)
	if err != nil {
		return err
	}
	if err := c.session.GuildMemberRoleRemove(c.guildID, userID, roleID); err != nil {
		return fmt.Errorf("%w: revoke %v role from %v: %v", model.UpstreamErr, plan, userID, err)
	}
	log.Info("revoked %v role from discord user %v", plan, userID)
	return nil
}
