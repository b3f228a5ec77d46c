package io

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// Stored documents mirror the JSON format, keyed by "name".
type datasetDoc struct {
	Name      string      `bson:"name"`
	Contigs   []contigDoc `bson:"singleton_contigs"`
	Remaining *contigDoc  `bson:"remaining_genome_contig,omitempty"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

type contigDoc struct {
	Name            string  `bson:"name"`
	Size            int     `bson:"size"`
	HitClusters     [][]int `bson:"hit_clusters"`
	NrphHitClusters [][]int `bson:"nrph_hit_clusters"`
	GiesmaBands     [][]int `bson:"giesma_bands,omitempty"`
}

// MongoSource loads datasets from a MongoDB collection.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo dials uri and pings the server before returning.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoSource{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// Load fetches the dataset stored under name.
func (s *MongoSource) Load(ctx context.Context, name string) (*karyotype.Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return nil, err
	}
	var doc datasetDoc
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "dataset %s not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find dataset %s", name)
	}
	ds, err := doc.dataset()
	if err != nil {
		return nil, err
	}
	if err := karyotype.Validate(ds); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "dataset %s", name)
	}
	return ds, nil
}

// List returns the stored dataset names, sorted.
func (s *MongoSource) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.M{"name": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list datasets")
	}
	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list datasets")
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Save upserts ds under name.
func (s *MongoSource) Save(ctx context.Context, name string, ds *karyotype.Dataset) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	doc := newDatasetDoc(name, ds)
	doc.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save dataset %s", name)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Saver = (*MongoSource)(nil)

func newDatasetDoc(name string, ds *karyotype.Dataset) datasetDoc {
	doc := datasetDoc{Name: name, Contigs: make([]contigDoc, len(ds.Contigs))}
	for i := range ds.Contigs {
		doc.Contigs[i] = newContigDoc(&ds.Contigs[i])
	}
	if ds.RemainingGenomeContig != nil {
		rc := newContigDoc(ds.RemainingGenomeContig)
		doc.Remaining = &rc
	}
	return doc
}

func newContigDoc(c *karyotype.Contig) contigDoc {
	d := contigDoc{
		Name:            c.Name,
		Size:            c.Size,
		HitClusters:     make([][]int, len(c.HitClusters)),
		NrphHitClusters: make([][]int, len(c.NrphHitClusters)),
	}
	for i, iv := range c.HitClusters {
		d.HitClusters[i] = []int{iv.Start, iv.End, iv.Count}
	}
	for i, iv := range c.NrphHitClusters {
		d.NrphHitClusters[i] = []int{iv.Start, iv.End, iv.Count}
	}
	for _, b := range c.GiesmaBands {
		d.GiesmaBands = append(d.GiesmaBands, []int{b.Start, b.End, b.ColorCode})
	}
	return d
}

func (d datasetDoc) dataset() (*karyotype.Dataset, error) {
	ds := &karyotype.Dataset{Contigs: make([]karyotype.Contig, len(d.Contigs))}
	for i := range d.Contigs {
		c, err := d.Contigs[i].contig()
		if err != nil {
			return nil, err
		}
		ds.Contigs[i] = c
	}
	if d.Remaining != nil {
		c, err := d.Remaining.contig()
		if err != nil {
			return nil, err
		}
		ds.RemainingGenomeContig = &c
	}
	return ds, nil
}

func (d contigDoc) contig() (karyotype.Contig, error) {
	c := karyotype.Contig{Name: d.Name, Size: d.Size}
	var err error
	if c.HitClusters, err = intervals(d.Name, "hit cluster", d.HitClusters); err != nil {
		return c, err
	}
	if c.NrphHitClusters, err = intervals(d.Name, "nrph hit cluster", d.NrphHitClusters); err != nil {
		return c, err
	}
	for _, t := range d.GiesmaBands {
		if len(t) != 3 {
			return c, errors.New(errors.ErrCodeInvalidInput, "contig %s: giesma band must have 3 elements, got %d", d.Name, len(t))
		}
		c.GiesmaBands = append(c.GiesmaBands, karyotype.Band{Start: t[0], End: t[1], ColorCode: t[2]})
	}
	return c, nil
}

func intervals(contig, what string, triples [][]int) ([]karyotype.Interval, error) {
	out := make([]karyotype.Interval, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "contig %s: %s must have 3 elements, got %d", contig, what, len(t))
		}
		out[i] = karyotype.Interval{Start: t[0], End: t[1], Count: t[2]}
	}
	return out, nil
}
