package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/database"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// LessonFilter narrows a lesson listing. Zero values mean "no constraint".
type LessonFilter struct {
	DepartmentID int64
	SemesterNo   int
}

// Repository defines persistence for the course catalog: departments,
// lessons, groups and group registrations.
type Repository interface {
	CreateDepartment(ctx context.Context, name string) (int64, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id int64, name string) error
	DeleteDepartment(ctx context.Context, id int64) error

	CreateLesson(ctx context.Context, l *models.Lesson) (int64, error)
	ListLessons(ctx context.Context, f LessonFilter) ([]models.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id int64) error

	CreateGroup(ctx context.Context, g *models.LessonGroup) (int64, error)
	ListGroups(ctx context.Context, lessonID int64) ([]models.LessonGroup, error)
	CreateRegistration(ctx context.Context, r *models.GroupRegistration) (int64, error)
}

// MongoRepository implements Repository on Mongo collections. Sequential IDs
// come from the shared counters collection, one sequence per entity.
type MongoRepository struct {
	departments   *mongo.Collection
	lessons       *mongo.Collection
	groups        *mongo.Collection
	registrations *mongo.Collection
	counters      *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		departments:   db.Collection("departments"),
		lessons:       db.Collection("lessons"),
		groups:        db.Collection("lesson_groups"),
		registrations: db.Collection("user_lesson_groups"),
		counters:      db.Collection("counters"),
	}
}

func (r *MongoRepository) CreateDepartment(ctx context.Context, name string) (int64, error) {
	id, err := database.NextSequence(ctx, r.counters, "departments")
	if err != nil {
		return 0, err
	}
	_, err = r.departments.InsertOne(ctx, models.Department{ID: id, Name: name})
	return id, err
}

func (r *MongoRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	cur, err := r.departments.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Department{}
	for cur.Next(ctx) {
		var d models.Department
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (r *MongoRepository) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	var d models.Department
	if err := r.departments.FindOne(ctx, bson.M{"departmentID": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoRepository) UpdateDepartment(ctx context.Context, id int64, name string) error {
	_, err := r.departments.UpdateOne(ctx,
		bson.M{"departmentID": id},
		bson.M{"$set": bson.M{"departmentName": name}},
	)
	return err
}

func (r *MongoRepository) DeleteDepartment(ctx context.Context, id int64) error {
	_, err := r.departments.DeleteOne(ctx, bson.M{"departmentID": id})
	return err
}

func (r *MongoRepository) CreateLesson(ctx context.Context, l *models.Lesson) (int64, error) {
	id, err := database.NextSequence(ctx, r.counters, "lessons")
	if err != nil {
		return 0, err
	}
	l.ID = id
	_, err = r.lessons.InsertOne(ctx, l)
	return id, err
}

// ListLessons filters, then resolves department names in a second query.
func (r *MongoRepository) ListLessons(ctx context.Context, f LessonFilter) ([]models.Lesson, error) {
	filter := bson.M{}
	if f.DepartmentID != 0 {
		filter["departmentID"] = f.DepartmentID
	}
	if f.SemesterNo != 0 {
		filter["semesterNo"] = f.SemesterNo
	}
	cur, err := r.lessons.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Lesson{}
	for cur.Next(ctx) {
		var l models.Lesson
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, r.fillDepartmentNames(ctx, out)
}

func (r *MongoRepository) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	var l models.Lesson
	if err := r.lessons.FindOne(ctx, bson.M{"lessonID": id}).Decode(&l); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	one := []models.Lesson{l}
	if err := r.fillDepartmentNames(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *MongoRepository) DeleteLesson(ctx context.Context, id int64) error {
	_, err := r.lessons.DeleteOne(ctx, bson.M{"lessonID": id})
	return err
}

func (r *MongoRepository) fillDepartmentNames(ctx context.Context, ls []models.Lesson) error {
	ids := []int64{}
	seen := map[int64]bool{}
	for _, l := range ls {
		if l.DepartmentID != 0 && !seen[l.DepartmentID] {
			seen[l.DepartmentID] = true
			ids = append(ids, l.DepartmentID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	cur, err := r.departments.Find(ctx, bson.M{"departmentID": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	names := map[int64]string{}
	for cur.Next(ctx) {
		var d models.Department
		if err := cur.Decode(&d); err != nil {
			return err
		}
		names[d.ID] = d.Name
	}
	if err := cur.Err(); err != nil {
		return err
	}
	for i := range ls {
		ls[i].DepartmentName = names[ls[i].DepartmentID]
	}
	return nil
}

func (r *MongoRepository) CreateGroup(ctx context.Context, g *models.LessonGroup) (int64, error) {
	id, err := database.NextSequence(ctx, r.counters, "lesson_groups")
	if err != nil {
		return 0, err
	}
	g.ID = id
	_, err = r.groups.InsertOne(ctx, g)
	return id, err
}

func (r *MongoRepository) ListGroups(ctx context.Context, lessonID int64) ([]models.LessonGroup, error) {
	filter := bson.M{}
	if lessonID != 0 {
		filter["lessonID"] = lessonID
	}
	cur, err := r.groups.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.LessonGroup{}
	for cur.Next(ctx) {
		var g models.LessonGroup
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (r *MongoRepository) CreateRegistration(ctx context.Context, reg *models.GroupRegistration) (int64, error) {
	id, err := database.NextSequence(ctx, r.counters, "registrations")
	if err != nil {
		return 0, err
	}
	reg.ID = id
	reg.CreatedAt = time.Now().UTC()
	_, err = r.registrations.InsertOne(ctx, reg)
	return id, err
}
