package lemmy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// accountService implements app.AccountService using the Lemmy API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by Lemmy.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

// Login trades credentials for a JWT, then resolves the account behind it.
func (s *accountService) Login(ctx context.Context, instanceURL, username, password, totp string) (domain.Session, error) {
	sess := domain.Session{InstanceURL: domain.NormalizeInstanceURL(instanceURL)}
	body := map[string]any{
		"username_or_email": strings.TrimSpace(username),
		"password":          password,
	}
	if totp = strings.TrimSpace(totp); totp != "" {
		body["totp_2fa_token"] = totp
	}

	var login struct {
		JWT string `json:"jwt"`
	}
	if err := s.client.Post(ctx, sess, "/user/login", body, &login); err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == domain.ErrorKindServer && apiErr.Status < 500 {
			return domain.Session{}, domain.ErrWrongCredentials
		}
		return domain.Session{}, fmt.Errorf("logging in: %w", err)
	}
	if login.JWT == "" {
		return domain.Session{}, domain.ErrWrongCredentials
	}
	sess.JWT = login.JWT

	var site struct {
		MyUser *struct {
			LocalUserView struct {
				Person personJSON `json:"person"`
			} `json:"local_user_view"`
		} `json:"my_user"`
	}
	if err := s.client.Get(ctx, sess, "/site", nil, &site); err != nil {
		return domain.Session{}, fmt.Errorf("fetching site: %w", err)
	}
	if site.MyUser == nil {
		return domain.Session{}, domain.ErrWrongCredentials
	}
	sess.AccountID = site.MyUser.LocalUserView.Person.ID
	sess.AccountName = site.MyUser.LocalUserView.Person.Name
	return sess, nil
}

func (s *accountService) PersonDetails(ctx context.Context, sess domain.Session, id, page, limit int, savedOnly bool) (domain.PersonDetail, error) {
	query := url.Values{}
	query.Set("person_id", strconv.Itoa(id))
	query.Set("page", strconv.Itoa(max(page, 1)))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("sort", "New")
	if savedOnly {
		if err := requireLogin(sess); err != nil {
			return domain.PersonDetail{}, err
		}
		query.Set("saved_only", "true")
	}

	var resp struct {
		PersonView personView    `json:"person_view"`
		Posts      []postView    `json:"posts"`
		Comments   []commentView `json:"comments"`
	}
	if err := s.client.Get(ctx, sess, "/user", query, &resp); err != nil {
		return domain.PersonDetail{}, fmt.Errorf("fetching person %d: %w", id, err)
	}
	return domain.PersonDetail{
		Person:   mapPerson(resp.PersonView),
		Posts:    mapPosts(resp.Posts),
		Comments: mapComments(resp.Comments),
	}, nil
}

func (s *accountService) Inbox(ctx context.Context, sess domain.Session, mode domain.InboxMode, page, limit int, unreadOnly bool) ([]domain.InboxItem, error) {
	if err := requireLogin(sess); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 1)))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("unread_only", strconv.FormatBool(unreadOnly))

	switch mode {
	case domain.InboxMentions:
		query.Set("sort", "New")
		var resp struct {
			Mentions []mentionView `json:"mentions"`
		}
		if err := s.client.Get(ctx, sess, "/user/mention", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching mentions: %w", err)
		}
		out := make([]domain.InboxItem, 0, len(resp.Mentions))
		for _, v := range resp.Mentions {
			out = append(out, inboxFromComment(mode, v.PersonMention, v.commentView))
		}
		return out, nil

	case domain.InboxMessages:
		var resp struct {
			Messages []privateMessageView `json:"private_messages"`
		}
		if err := s.client.Get(ctx, sess, "/private_message/list", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching private messages: %w", err)
		}
		out := make([]domain.InboxItem, 0, len(resp.Messages))
		for _, v := range resp.Messages {
			if v.PrivateMessage.Deleted {
				continue
			}
			out = append(out, domain.InboxItem{
				Mode:        mode,
				ID:          v.PrivateMessage.ID,
				CreatorID:   v.Creator.ID,
				CreatorName: v.Creator.Name,
				Content:     v.PrivateMessage.Content,
				Read:        v.PrivateMessage.Read,
				Published:   v.PrivateMessage.Published.Time(),
			})
		}
		return out, nil

	default:
		query.Set("sort", "New")
		var resp struct {
			Replies []replyView `json:"replies"`
		}
		if err := s.client.Get(ctx, sess, "/user/replies", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching replies: %w", err)
		}
		out := make([]domain.InboxItem, 0, len(resp.Replies))
		for _, v := range resp.Replies {
			out = append(out, inboxFromComment(mode, v.CommentReply, v.commentView))
		}
		return out, nil
	}
}

func (s *accountService) SendMessage(ctx context.Context, sess domain.Session, recipientID int, content string) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ErrEmptyBody
	}
	body := map[string]any{"recipient_id": recipientID, "content": content, "auth": sess.JWT}
	if err := s.client.Post(ctx, sess, "/private_message", body, nil); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

func (s *accountService) MarkAllRead(ctx context.Context, sess domain.Session) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	body := map[string]any{"auth": sess.JWT}
	if err := s.client.Post(ctx, sess, "/user/mark_all_as_read", body, nil); err != nil {
		return fmt.Errorf("marking inbox read: %w", err)
	}
	return nil
}

func (s *accountService) BlockPerson(ctx context.Context, sess domain.Session, id int, block bool) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	body := map[string]any{"person_id": id, "block": block, "auth": sess.JWT}
	if err := s.client.Post(ctx, sess, "/user/block", body, nil); err != nil {
		return fmt.Errorf("blocking person %d: %w", id, err)
	}
	return nil
}
