package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/forum-server/internal/feed"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryForum implements every repository interface in memory
type memoryForum struct {
	mu sync.Mutex

	seq            map[string]int64
	users          []*models.User
	posts          []*models.Post
	comments       []*models.Comment
	announcements  []models.Announcement
	reports        []models.Report
	commentReports []models.CommentReport
	payments       []models.Payment
	categories     []models.Category
	tags           []models.Tag

	lastQuery feed.Query
	lastSort  feed.VoteSort
	failWith  error
}

func newMemoryForum() *memoryForum {
	return &memoryForum{seq: map[string]int64{}}
}

func (m *memoryForum) next(name string) int64 {
	m.seq[name]++
	return m.seq[name]
}

func (m *memoryForum) findUser(match func(*models.User) bool) *models.User {
	for _, u := range m.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (m *memoryForum) findPost(id int64) *models.Post {
	for _, p := range m.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// users

func (m *memoryForum) GetUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memoryForum) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.findUser(func(u *models.User) bool { return u.Email == email }); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryForum) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.findUser(func(u *models.User) bool { return u.ID == id }); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryForum) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findUser(func(u *models.User) bool { return u.Email == user.Email }) != nil {
		return repositories.ErrDuplicate
	}
	user.ID = m.next(repositories.SeqUsers)
	user.ObjectID = primitive.NewObjectID()
	if len(user.Badge) == 0 {
		user.Badge = []string{models.DefaultBadge}
	}
	if user.Posts == nil {
		user.Posts = []int64{}
	}
	if user.MembershipStatus == "" {
		user.MembershipStatus = models.MembershipFree
	}
	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

func (m *memoryForum) UpdatePrivileges(_ context.Context, id int64, set bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUser(func(u *models.User) bool { return u.ID == id })
	if u == nil {
		return repositories.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "membershipStatus":
			u.MembershipStatus = v.(string)
		case "role":
			u.Role = v.(models.Role)
		default:
			return fmt.Errorf("unexpected field %s", k)
		}
	}
	return nil
}

func (m *memoryForum) UpgradeMembership(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUser(func(u *models.User) bool { return u.Email == email })
	if u == nil {
		return repositories.ErrNotFound
	}
	u.MembershipStatus = models.MembershipGold
	for _, b := range u.Badge {
		if b == models.MembershipGold {
			return nil
		}
	}
	u.Badge = append(u.Badge, models.MembershipGold)
	return nil
}

func (m *memoryForum) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// posts

func (m *memoryForum) GetAllPosts(context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Post{}
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memoryForum) GetPostByID(_ context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.findPost(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryForum) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	author := m.findUser(func(u *models.User) bool { return u.ID == post.AuthorID })
	if author == nil {
		return fmt.Errorf("link post to author: %w", repositories.ErrNotFound)
	}
	post.ID = m.next(repositories.SeqPosts)
	post.ObjectID = primitive.NewObjectID()
	post.Comments = []int64{}
	post.CreatedAt = time.Now()
	cp := *post
	m.posts = append(m.posts, &cp)
	author.Posts = append(author.Posts, post.ID)
	return nil
}

func (m *memoryForum) IncrementVote(_ context.Context, id int64, vote string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPost(id)
	if p == nil {
		return repositories.ErrNotFound
	}
	switch vote {
	case models.VoteUp:
		p.UpVotes++
	case models.VoteDown:
		p.DownVotes++
	default:
		return fmt.Errorf("unknown vote %q", vote)
	}
	return nil
}

// comments

func (m *memoryForum) GetAllComments(context.Context) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memoryForum) GetCommentByID(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryForum) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPost(comment.PostID)
	if p == nil {
		return fmt.Errorf("link comment to post: %w", repositories.ErrNotFound)
	}
	comment.ID = m.next(repositories.SeqComments)
	comment.ObjectID = primitive.NewObjectID()
	cp := *comment
	m.comments = append(m.comments, &cp)
	p.Comments = append(p.Comments, comment.ID)
	return nil
}

func (m *memoryForum) DeleteComment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comments {
		if c.ID != id {
			continue
		}
		if p := m.findPost(c.PostID); p != nil {
			kept := []int64{}
			for _, cid := range p.Comments {
				if cid != id {
					kept = append(kept, cid)
				}
			}
			p.Comments = kept
		}
		m.comments = append(m.comments[:i], m.comments[i+1:]...)
		return nil
	}
	return repositories.ErrNotFound
}

// feed

func (m *memoryForum) joined(match func(*models.Post) bool) []models.FeedPost {
	out := []models.FeedPost{}
	for _, p := range m.posts {
		if !match(p) {
			continue
		}
		author := m.findUser(func(u *models.User) bool { return u.ID == p.AuthorID })
		if author == nil {
			continue
		}
		fp := models.FeedPost{Post: *p, Author: *author, CommentData: []models.Comment{}}
		for _, c := range m.comments {
			if c.PostID == p.ID {
				fp.CommentData = append(fp.CommentData, *c)
			}
		}
		out = append(out, fp)
	}
	return out
}

func (m *memoryForum) MergedFeed(_ context.Context, q feed.Query) ([]models.FeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = q
	return m.joined(func(*models.Post) bool { return true }), nil
}

func (m *memoryForum) PostsByVotes(_ context.Context, sort feed.VoteSort) ([]models.FeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSort = sort
	return m.joined(func(*models.Post) bool { return true }), nil
}

func (m *memoryForum) PostsByAuthor(_ context.Context, authorID int64) ([]models.FeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joined(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

// catalog

func (m *memoryForum) GetCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Category{}, m.categories...), nil
}

func (m *memoryForum) GetTags(context.Context) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Tag{}, m.tags...), nil
}

// announcements

func (m *memoryForum) CreateAnnouncement(_ context.Context, ann *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ann.ID = m.next(repositories.SeqAnnouncements)
	ann.ObjectID = primitive.NewObjectID()
	m.announcements = append(m.announcements, *ann)
	return nil
}

func (m *memoryForum) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Announcement{}, m.announcements...), nil
}

// reports

func (m *memoryForum) CreateReport(_ context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ReportID = m.next(repositories.SeqReports)
	report.ObjectID = primitive.NewObjectID()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryForum) CreateCommentReport(_ context.Context, report *models.CommentReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ReportID = m.next(repositories.SeqCommentReports)
	report.ObjectID = primitive.NewObjectID()
	m.commentReports = append(m.commentReports, *report)
	return nil
}

func (m *memoryForum) GetReports(context.Context) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Report{}, m.reports...), nil
}

func (m *memoryForum) GetCommentReports(context.Context) ([]models.CommentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CommentReport{}, m.commentReports...), nil
}

// payments

func (m *memoryForum) CreatePayment(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.TransactionID == payment.TransactionID {
			return repositories.ErrDuplicate
		}
	}
	payment.ID = uint(len(m.payments) + 1)
	payment.CreatedAt = time.Now()
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *memoryForum) GetPaymentsByEmail(_ context.Context, email string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Payment{}
	for i := len(m.payments) - 1; i >= 0; i-- {
		if m.payments[i].Email == email {
			out = append(out, m.payments[i])
		}
	}
	return out, nil
}

// stats

func (m *memoryForum) Stats(context.Context) (*repositories.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &repositories.Stats{
		Posts:    int64(len(m.posts)),
		Users:    int64(len(m.users)),
		Comments: int64(len(m.comments)),
		Reports:  int64(len(m.reports)),
	}, nil
}

// processor

type recordingProcessor struct {
	amount   int64
	currency string
	methods  []string
	err      error
}

func (p *recordingProcessor) CreateChargeIntent(_ context.Context, amount int64, currency string, methods []string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.amount, p.currency, p.methods = amount, currency, methods
	return fmt.Sprintf("pi_%d_secret", amount), nil
}

var (
	_ repositories.UserRepository         = (*memoryForum)(nil)
	_ repositories.PostRepository         = (*memoryForum)(nil)
	_ repositories.CommentRepository      = (*memoryForum)(nil)
	_ repositories.FeedRepository         = (*memoryForum)(nil)
	_ repositories.CatalogRepository      = (*memoryForum)(nil)
	_ repositories.AnnouncementRepository = (*memoryForum)(nil)
	_ repositories.ReportRepository       = (*memoryForum)(nil)
	_ repositories.PaymentRepository      = (*memoryForum)(nil)
	_ StatsReader                         = (*memoryForum)(nil)
)
