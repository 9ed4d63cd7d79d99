package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

const enquiriesCollection = "enquiries"

// EnquiryRepository persists enquiries in MongoDB.
type EnquiryRepository struct {
	coll *mongo.Collection
}

func NewEnquiryRepository(db *mongo.Database) *EnquiryRepository {
	return &EnquiryRepository{coll: db.Collection(enquiriesCollection)}
}

type mongoEnquiry struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty"`
	EnquiryID          string               `bson:"enquiry_id"`
	Customer           string               `bson:"customer"`
	ContactPerson      string               `bson:"contact_person"`
	Email              string               `bson:"email"`
	Phone              string               `bson:"phone"`
	Address            string               `bson:"address,omitempty"`
	City               string               `bson:"city,omitempty"`
	State              string               `bson:"state,omitempty"`
	PostalCode         string               `bson:"postal_code,omitempty"`
	Country            string               `bson:"country,omitempty"`
	Product            string               `bson:"product"`
	Quantity           int                  `bson:"quantity"`
	Specifications     string               `bson:"specifications,omitempty"`
	DrawingRef         string               `bson:"drawing_ref,omitempty"`
	ExpectedDelivery   string               `bson:"expected_delivery,omitempty"`
	Timeline           string               `bson:"timeline,omitempty"`
	Budget             string               `bson:"budget,omitempty"`
	MaterialPreference string               `bson:"material_preference,omitempty"`
	Status             domain.EnquiryStatus `bson:"status"`
	Notes              string               `bson:"notes,omitempty"`
	CreatedAt          time.Time            `bson:"created_at"`
}

func (me *mongoEnquiry) toDomain() *domain.Enquiry {
	return &domain.Enquiry{
		ID:                 me.ID.Hex(),
		EnquiryID:          me.EnquiryID,
		Customer:           me.Customer,
		ContactPerson:      me.ContactPerson,
		Email:              me.Email,
		Phone:              me.Phone,
		Address:            me.Address,
		City:               me.City,
		State:              me.State,
		PostalCode:         me.PostalCode,
		Country:            me.Country,
		Product:            me.Product,
		Quantity:           me.Quantity,
		Specifications:     me.Specifications,
		DrawingRef:         me.DrawingRef,
		ExpectedDelivery:   me.ExpectedDelivery,
		Timeline:           me.Timeline,
		Budget:             me.Budget,
		MaterialPreference: me.MaterialPreference,
		Status:             me.Status,
		Notes:              me.Notes,
		CreatedAt:          me.CreatedAt.UTC(),
	}
}

func toMongoEnquiry(e *domain.Enquiry) mongoEnquiry {
	return mongoEnquiry{
		EnquiryID:          e.EnquiryID,
		Customer:           e.Customer,
		ContactPerson:      e.ContactPerson,
		Email:              e.Email,
		Phone:              e.Phone,
		Address:            e.Address,
		City:               e.City,
		State:              e.State,
		PostalCode:         e.PostalCode,
		Country:            e.Country,
		Product:            e.Product,
		Quantity:           e.Quantity,
		Specifications:     e.Specifications,
		DrawingRef:         e.DrawingRef,
		ExpectedDelivery:   e.ExpectedDelivery,
		Timeline:           e.Timeline,
		Budget:             e.Budget,
		MaterialPreference: e.MaterialPreference,
		Status:             e.Status,
		Notes:              e.Notes,
		CreatedAt:          e.CreatedAt,
	}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error) {
	res, err := r.coll.InsertOne(ctx, toMongoEnquiry(e))
	if err != nil {
		return nil, fmt.Errorf("insert enquiry: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// List returns all enquiries ordered by creation time, newest first.
func (r *EnquiryRepository) List(ctx context.Context) ([]*domain.Enquiry, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Enquiry
	for cur.Next(ctx) {
		var me mongoEnquiry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode enquiry: %w", err)
		}
		out = append(out, me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return out, nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEnquiryNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EnquiryRepository) FindByEnquiryID(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	return r.findOne(ctx, bson.M{"enquiry_id": enquiryID})
}

func (r *EnquiryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Enquiry, error) {
	var me mongoEnquiry
	if err := r.coll.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("find enquiry: %w", err)
	}
	return me.toDomain(), nil
}

// Update applies the non-nil fields of upd and returns the updated record.
func (r *EnquiryRepository) Update(ctx context.Context, id string, upd ports.EnquiryUpdate) (*domain.Enquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEnquiryNotFound
	}

	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": oid})
	}

	var me mongoEnquiry
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("update enquiry: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEnquiryNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEnquiryNotFound
	}
	return nil
}

func (r *EnquiryRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count enquiries: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the enquiry_id unique index and the created_at sort
// index backing List.
func (r *EnquiryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "enquiry_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
