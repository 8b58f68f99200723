package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

// ReviewService drives the admin moderation page and owner replies.
type ReviewService struct {
	session *Session
	repo    ports.ReviewRepository
	logger  zerolog.Logger
}

func NewReviewService(s *Session) *ReviewService {
	return &ReviewService{session: s, repo: s.remote.Reviews, logger: s.log}
}

// List fetches the moderation page. Only admins may open it.
func (s *ReviewService) List(ctx context.Context, filter domain.ReviewFilter) (ReviewsView, error) {
	user, epoch, err := s.admin()
	if err != nil {
		return ReviewsView{}, err
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	_, coll, _ := s.session.collections()
	if err := s.fetch(ctx, coll, epoch, filter); err != nil {
		return ReviewsView{}, err
	}
	s.session.mu.Lock()
	s.session.reviewFilter = filter
	s.session.mu.Unlock()
	return newReviewsView(user.Role, filter, coll.Items(), coll.Loading()), nil
}

func (s *ReviewService) fetch(ctx context.Context, coll *Collection[domain.Review], epoch uint64, filter domain.ReviewFilter) error {
	done := coll.BeginLoad()
	defer done()

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return err
	}
	coll.Replace(items)
	return nil
}

// Update applies the admin edit form. The reply text goes into the first
// reply comment, which is created with the admin as author when missing.
func (s *ReviewService) Update(ctx context.Context, id string, in ports.ReviewEdit) (ReviewsView, error) {
	if in.Rating <= 0 || in.Rating > domain.MaxRating {
		return ReviewsView{}, domain.ErrInvalidRating
	}
	return s.mutate(ctx, id, func(user domain.User, r domain.Review) (domain.Review, error) {
		r.Rating = in.Rating
		r.Comment = in.Comment
		if !in.DateVisit.IsZero() {
			r.DateVisit = in.DateVisit
		}
		r.OtherComments = withReply(r.OtherComments, user, in.Reply)
		return r, nil
	})
}

// withReply returns comments with the first reply's text set to text.
func withReply(comments []domain.ReviewComment, author domain.User, text string) []domain.ReviewComment {
	out := append([]domain.ReviewComment(nil), comments...)
	if len(out) > 0 {
		out[0].Comment = text
		return out
	}
	if strings.TrimSpace(text) == "" {
		return out
	}
	return append(out, domain.ReviewComment{
		Author:  domain.UserRef{ID: author.ID, Name: author.Name, Role: author.Role},
		Comment: text,
		Status:  domain.StatusActive,
	})
}

// Deactivate soft deletes a review.
func (s *ReviewService) Deactivate(ctx context.Context, id string) (ReviewsView, error) {
	return s.setStatus(ctx, id, domain.StatusInactive)
}

// Activate restores a soft deleted review.
func (s *ReviewService) Activate(ctx context.Context, id string) (ReviewsView, error) {
	return s.setStatus(ctx, id, domain.StatusActive)
}

func (s *ReviewService) setStatus(ctx context.Context, id string, status domain.Status) (ReviewsView, error) {
	return s.mutate(ctx, id, func(_ domain.User, r domain.Review) (domain.Review, error) {
		if !r.Status.CanTransitionTo(status) {
			return r, fmt.Errorf("review %s to %s: %w", r.ID, status, domain.ErrInvalidTransition)
		}
		return r.WithStatus(status), nil
	})
}

// mutate PUTs the changed review and refetches the whole moderation list.
func (s *ReviewService) mutate(ctx context.Context, id string, change func(domain.User, domain.Review) (domain.Review, error)) (ReviewsView, error) {
	user, epoch, err := s.admin()
	if err != nil {
		return ReviewsView{}, err
	}
	_, coll, _ := s.session.collections()
	s.session.mu.RLock()
	filter := s.session.reviewFilter
	s.session.mu.RUnlock()

	current, ok := coll.Find(id)
	if !ok {
		// There is no single-review endpoint; reload the page and look again.
		if err := s.fetch(ctx, coll, epoch, filter); err != nil {
			return ReviewsView{}, err
		}
		if current, ok = coll.Find(id); !ok {
			return ReviewsView{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
	}

	next, err := change(user, current)
	if err != nil {
		return ReviewsView{}, err
	}
	if _, err := s.repo.Update(ctx, next); err != nil {
		return ReviewsView{}, s.session.Fail(err)
	}
	s.logger.Info().Str("review", id).Str("status", string(next.Status)).Msg("review updated")

	if err := s.fetch(ctx, coll, epoch, filter); err != nil {
		return ReviewsView{}, err
	}
	return newReviewsView(user.Role, filter, coll.Items(), coll.Loading()), nil
}

// Reply attaches an owner or admin reply to a review. An owner may reply
// only while the review has no reply text.
func (s *ReviewService) Reply(ctx context.Context, id, text string) (ReviewCard, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return ReviewCard{}, err
	}
	if user.Role != domain.RoleOwner && user.Role != domain.RoleAdmin {
		return ReviewCard{}, domain.ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return ReviewCard{}, domain.ErrEmptyComment
	}
	if rev, ok := s.findKnown(id); ok && user.Role == domain.RoleOwner && !domain.CanReply(user.Role, rev) {
		return ReviewCard{}, fmt.Errorf("reply to review %s: %w", id, domain.ErrForbidden)
	}

	updated, err := s.repo.AddComment(ctx, id, domain.ReviewComment{
		Author:  domain.UserRef{ID: user.ID, Name: user.Name, Role: user.Role},
		Comment: text,
		Status:  domain.StatusActive,
	})
	if err != nil {
		return ReviewCard{}, s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return ReviewCard{}, err
	}
	s.logger.Info().Str("review", id).Msg("reply added")

	_, coll, _ := s.session.collections()
	coll.Splice(*updated)
	s.session.mu.Lock()
	if d := s.session.detail; d != nil {
		for i := range d.Reviews {
			if d.Reviews[i].ID == updated.ID {
				d.Reviews[i] = *updated
			}
		}
	}
	s.session.mu.Unlock()
	return newReviewCard(user.Role, *updated, ""), nil
}

// findKnown looks a review up in the moderation list, then in the last
// opened restaurant.
func (s *ReviewService) findKnown(id string) (domain.Review, bool) {
	_, coll, _ := s.session.collections()
	if r, ok := coll.Find(id); ok {
		return r, true
	}
	s.session.mu.RLock()
	defer s.session.mu.RUnlock()
	if d := s.session.detail; d != nil {
		for _, r := range d.Reviews {
			if r.ID == id {
				return r, true
			}
		}
	}
	return domain.Review{}, false
}

func (s *ReviewService) admin() (domain.User, uint64, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return user, epoch, err
	}
	if !domain.CanModerateReviews(user.Role) {
		return user, epoch, domain.ErrForbidden
	}
	return user, epoch, nil
}
