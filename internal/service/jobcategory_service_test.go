package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-services-admin/internal/domain"
)

func TestJobCategoryCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	categories := NewJobCategoryService(db)

	jc, err := categories.Create(context.Background(), CreateJobCategoryInput{
		Name: "Cleaning", JobsCount: 24, AvgPrice: 75, Tags: []string{"indoor", "recurring"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobCategoryStatusActive, jc.Status)
	assert.Len(t, jc.Tags, 2)
}

func TestJobCategoryTagsFullReplace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewJobCategoryService(db)

	jc, err := categories.Create(ctx, CreateJobCategoryInput{
		Name: "Cleaning", Tags: []string{"indoor", "recurring"},
	})
	require.NoError(t, err)

	replacement := []string{"outdoor"}
	got, err := categories.Update(ctx, jc.ID, UpdateJobCategoryInput{Tags: &replacement})
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "outdoor", got.Tags[0].Name)

	// 旧标签行应被物理删除
	var n int64
	require.NoError(t, db.Model(&domain.JobCategoryTag{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// 没传 Tags 则不动
	got, err = categories.Update(ctx, jc.ID, UpdateJobCategoryInput{Name: strPtr("Deep Cleaning")})
	require.NoError(t, err)
	assert.Equal(t, "Deep Cleaning", got.Name)
	assert.Len(t, got.Tags, 1)
}

func TestJobCategoryArchiveActivate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewJobCategoryService(db)

	jc, err := categories.Create(ctx, CreateJobCategoryInput{Name: "Cleaning"})
	require.NoError(t, err)

	got, err := categories.SetStatus(ctx, jc.ID, domain.JobCategoryStatusArchived)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCategoryStatusArchived, got.Status)

	got, err = categories.SetStatus(ctx, jc.ID, domain.JobCategoryStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCategoryStatusActive, got.Status)

	_, err = categories.SetStatus(ctx, "missing", domain.JobCategoryStatusArchived)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}

func TestJobCategoryFindAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewJobCategoryService(db)

	for _, in := range []CreateJobCategoryInput{
		{Name: "Cleaning", Description: "Residential cleaning"},
		{Name: "Plumbing"},
		{Name: "Electrical", Status: "ARCHIVED"},
	} {
		_, err := categories.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := categories.FindAll(ctx, JobCategoryQuery{Status: "ACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = categories.FindAll(ctx, JobCategoryQuery{Search: "residential"})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Cleaning", res.Items[0].Name)

	res, err = categories.FindAll(ctx, JobCategoryQuery{ListParams: ListParams{SortBy: "name", SortOrder: "asc"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "Cleaning", res.Items[0].Name)
}

func TestJobCategorySoftDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewJobCategoryService(db)

	jc, err := categories.Create(ctx, CreateJobCategoryInput{Name: "Cleaning"})
	require.NoError(t, err)

	require.NoError(t, categories.SoftDelete(ctx, jc.ID))
	require.NoError(t, categories.SoftDelete(ctx, jc.ID))

	_, err = categories.FindByID(ctx, jc.ID)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)

	err = categories.SoftDelete(ctx, "never-existed")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}
