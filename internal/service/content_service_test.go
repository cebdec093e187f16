package service

import (
	"context"
	"testing"
	"time"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestUserService_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, newTestDB(t))

	u, err := s.Register(ctx, models.RegisterRequest{Username: "minji", Password: "secret12"})
	require.NoError(t, err)
	assert.Equal(t, "minji", u.Nickname)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "secret12", u.PasswordHash)

	_, err = s.Register(ctx, models.RegisterRequest{Username: "minji", Password: "other123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = s.Login(ctx, models.LoginRequest{Username: "minji", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, models.LoginRequest{Username: "nobody", Password: "secret12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := s.Login(ctx, models.LoginRequest{Username: "minji", Password: "secret12"})
	require.NoError(t, err)
	claims, err := s.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	updated, err := s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Nickname: "MJ"})
	require.NoError(t, err)
	assert.Equal(t, "MJ", updated.Nickname)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	now := time.Now()
	issuer.now = func() time.Time { return now }

	token, exp, err := issuer.Issue(&models.User{ID: 3, Username: "u", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute).Unix(), exp.Unix())

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = NewTokenIssuer("other", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestThreadService_Ownership(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newUserService(t, db)
	owner := register(t, users, "owner")
	other := register(t, users, "other")
	admin := &Claims{UserID: other.UserID, Role: models.RoleAdmin}

	s := NewThreadService(repository.NewThreadRepository(db), repository.NewUserRepository(db), zaptest.NewLogger(t))

	th, err := s.Create(ctx, owner, models.ThreadRequest{Title: "Jeju in May", Area: "Jeju"})
	require.NoError(t, err)
	assert.Equal(t, "owner", th.Author)

	_, err = s.Update(ctx, other, th.ID, models.ThreadRequest{Title: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := s.Update(ctx, owner, th.ID, models.ThreadRequest{Title: "Jeju in June", Area: "Jeju"})
	require.NoError(t, err)
	assert.Equal(t, "Jeju in June", updated.Title)

	_, err = s.ToggleLike(ctx, other, th.ID)
	require.NoError(t, err)

	got, err := s.Get(ctx, th.ID, other.UserID)
	require.NoError(t, err)
	assert.True(t, got.LikedByCurrentUser)
	assert.Equal(t, 1, got.Count)

	got, err = s.Get(ctx, th.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.LikedByCurrentUser)
	assert.Equal(t, 2, got.Count)

	page, err := s.List(ctx, models.ThreadFilter{Area: "Jeju"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	assert.ErrorIs(t, s.Delete(ctx, other, th.ID), ErrForbidden)
	require.NoError(t, s.Delete(ctx, admin, th.ID))
	_, err = s.Get(ctx, th.ID, 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCommentService_Tree(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newUserService(t, db)
	author := register(t, users, "writer")
	threads := repository.NewThreadRepository(db)

	s := NewCommentService(repository.NewCommentRepository(db), threads, repository.NewUserRepository(db), zaptest.NewLogger(t))

	a := &models.Thread{UserID: author.UserID, Title: "a", Author: "writer"}
	b := &models.Thread{UserID: author.UserID, Title: "b", Author: "writer"}
	require.NoError(t, threads.Create(ctx, a))
	require.NoError(t, threads.Create(ctx, b))

	root, err := s.Create(ctx, author, models.CommentRequest{ThreadID: a.ID, Body: "root"})
	require.NoError(t, err)
	reply, err := s.Create(ctx, author, models.CommentRequest{ThreadID: a.ID, ParentID: &root.ID, Body: "reply"})
	require.NoError(t, err)
	_, err = s.Create(ctx, author, models.CommentRequest{ThreadID: a.ID, ParentID: &reply.ID, Body: "nested"})
	require.NoError(t, err)
	_, err = s.Create(ctx, author, models.CommentRequest{ThreadID: a.ID, Body: "second"})
	require.NoError(t, err)

	_, err = s.Create(ctx, author, models.CommentRequest{ThreadID: b.ID, ParentID: &root.ID, Body: "cross"})
	assert.ErrorIs(t, err, ErrParentMismatch)
	_, err = s.Create(ctx, author, models.CommentRequest{ThreadID: 999, Body: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tree, err := s.Tree(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "root", tree[0].Body)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "reply", tree[0].Replies[0].Body)
	assert.Equal(t, "nested", tree[0].Replies[0].Replies[0].Body)
	assert.Empty(t, tree[1].Replies)

	require.NoError(t, s.Delete(ctx, author, root.ID))
	tree, _ = s.Tree(ctx, a.ID)
	require.Len(t, tree, 1)

	th, _ := threads.GetByID(ctx, a.ID)
	assert.Equal(t, 1, th.CommentCount)
}

func TestBuildCommentTree_OrphansBecomeRoots(t *testing.T) {
	missing := int64(42)
	tree := BuildCommentTree([]*models.Comment{
		{ID: 1, Body: "a"},
		{ID: 2, ParentID: &missing, Body: "orphan"},
	})
	require.Len(t, tree, 2)
	assert.Equal(t, "orphan", tree[1].Body)
	assert.NotNil(t, tree[0].Replies)
}

func TestTrafficService_SaveSelectedRoute(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newPlanner(t, &fakeGeocoder{}, &fakeRoutes{})
	traffic := NewTrafficService(repository.NewTrafficRepository(newTestDB(t)), svc, zaptest.NewLogger(t))

	sess := sessions.Create()
	_, err := traffic.SaveSelectedRoute(ctx, sess.ID, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_ = sess.Update(func(st *planner.State) error {
		_, err := st.Route.Select(&gangnam, &hongdae, subwayCandidate())
		return err
	})

	saved, err := traffic.SaveSelectedRoute(ctx, sess.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3650, saved.Total)
	require.Len(t, saved.Records, 2)
	assert.Equal(t, "2호선", saved.Records[0].Vehicle)
	assert.Equal(t, "00:25:00", saved.Records[0].SpendTime)
	assert.Equal(t, "버스", saved.Records[1].Vehicle)

	_, err = traffic.Create(ctx, models.TrafficRequest{TourID: 5, Vehicle: "택시", SpendTime: "0:10", Price: 8000})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = traffic.Create(ctx, models.TrafficRequest{TourID: 5, Vehicle: "택시", SpendTime: "00:10:00", Price: 8000})
	require.NoError(t, err)

	sum, err := traffic.ByTour(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, sum.Records, 3)
	assert.Equal(t, 11650, sum.Total)
}
