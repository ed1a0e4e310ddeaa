package tags

import (
	"context"

	"github.com/marginbooks/margin/pkg/database"
	"github.com/marginbooks/margin/pkg/errcodes"
	"github.com/marginbooks/margin/pkg/models"
	"github.com/pkg/errors"
)

type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db}
}

// ListTags returns every tag ordered by name.
func (svc *Service) ListTags(ctx context.Context) ([]*models.Tag, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	tagList := []*models.Tag{}
	err := svc.db.
		NewSelect().
		Model(&tagList).
		Order("t.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tagList, nil
}

// CreateTag inserts a tag. A duplicate name surfaces as a Conflict carrying
// the store's message.
func (svc *Service) CreateTag(ctx context.Context, name, color string) (*models.Tag, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	tag := &models.Tag{
		Name:  name,
		Color: color,
	}

	_, err := svc.db.
		NewInsert().
		Model(tag).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errcodes.IsUniqueViolation(err) {
			return nil, errcodes.Conflict(err.Error())
		}
		return nil, errors.WithStack(err)
	}

	return tag, nil
}

// DeleteTag deletes a tag; the cascade rule on book_tags removes every
// association along with it. Deleting an absent id is a no-op.
func (svc *Service) DeleteTag(ctx context.Context, id int) error {
	svc.db.Acquire()
	defer svc.db.Release()

	_, err := svc.db.
		NewDelete().
		Model((*models.Tag)(nil)).
		Where("t.id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// UpdateTagColor updates a tag's color in place; no-op if the id is absent.
func (svc *Service) UpdateTagColor(ctx context.Context, id int, color string) error {
	svc.db.Acquire()
	defer svc.db.Release()

	_, err := svc.db.
		NewUpdate().
		Model((*models.Tag)(nil)).
		Set("color = ?", color).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// TagBook attaches a tag to a book. The unique constraint on
// (book_slug, tag_id) makes a repeat attach a silent no-op rather than an
// application-level check.
func (svc *Service) TagBook(ctx context.Context, slug string, tagID int) error {
	svc.db.Acquire()
	defer svc.db.Release()

	bookTag := &models.BookTag{
		BookSlug: slug,
		TagID:    tagID,
	}

	_, err := svc.db.
		NewInsert().
		Model(bookTag).
		On("CONFLICT (book_slug, tag_id) DO NOTHING").
		Exec(ctx)
	return errors.WithStack(err)
}

// UntagBook removes a single association; no-op if it doesn't exist.
func (svc *Service) UntagBook(ctx context.Context, slug string, tagID int) error {
	svc.db.Acquire()
	defer svc.db.Release()

	_, err := svc.db.
		NewDelete().
		Model((*models.BookTag)(nil)).
		Where("bt.book_slug = ?", slug).
		Where("bt.tag_id = ?", tagID).
		Exec(ctx)
	return errors.WithStack(err)
}

// ListBookTagsAll returns every association grouped into one mapping per
// distinct book slug. Books with zero tags are simply absent; no
// empty-tag-list entries are emitted.
func (svc *Service) ListBookTagsAll(ctx context.Context) ([]*models.BookTagMapping, error) {
	svc.db.Acquire()
	defer svc.db.Release()

	bookTags := []*models.BookTag{}
	err := svc.db.
		NewSelect().
		Model(&bookTags).
		Relation("Tag").
		Order("bt.book_slug ASC").
		Order("bt.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mappings := []*models.BookTagMapping{}
	var current *models.BookTagMapping
	for _, bt := range bookTags {
		if current == nil || current.Slug != bt.BookSlug {
			current = &models.BookTagMapping{Slug: bt.BookSlug, Tags: []*models.Tag{}}
			mappings = append(mappings, current)
		}
		current.Tags = append(current.Tags, bt.Tag)
	}

	return mappings, nil
}
