package gateway

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"rods-warden/core/database"
	"rods-warden/core/store"

	"gorm.io/gorm"
)

// Gateway implements store.Client over an object-store data plane and a
// MySQL catalog.
type Gateway struct {
	db        *gorm.DB
	os        ObjectStore
	resources []string
}

// New creates a connected Gateway. The catalog schema is migrated on
// connect.
func New(cfg Config, dbCfg database.Config) (*Gateway, error) {
	objStore, err := NewObjectStore(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}
	if err := db.AutoMigrate(&Collection{}, &Object{}, &Replica{}, &Metadata{}, &AccessEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	return NewWithBackends(db, objStore, cfg.Buckets()), nil
}

// NewWithBackends creates a Gateway over already-constructed backends.
func NewWithBackends(db *gorm.DB, objStore ObjectStore, resources []string) *Gateway {
	return &Gateway{db: db, os: objStore, resources: resources}
}

func (g *Gateway) Stat(ctx context.Context, p string) (store.Kind, error) {
	p = cleanPath(p)

	var n int64
	if err := g.db.WithContext(ctx).Model(&Collection{}).Where("path = ?", p).Count(&n).Error; err != nil {
		return store.KindNone, catalogErr(err)
	}
	if n > 0 {
		return store.KindCollection, nil
	}

	if err := g.db.WithContext(ctx).Model(&Object{}).Where("path = ?", p).Count(&n).Error; err != nil {
		return store.KindNone, catalogErr(err)
	}
	if n > 0 {
		return store.KindDataObject, nil
	}
	return store.KindNone, nil
}

func (g *Gateway) List(ctx context.Context, p string) ([]store.Entry, error) {
	p = cleanPath(p)
	if err := g.requireKind(ctx, p, store.KindCollection); err != nil {
		return nil, err
	}

	var colls []Collection
	if err := g.db.WithContext(ctx).Where("parent = ?", p).Find(&colls).Error; err != nil {
		return nil, catalogErr(err)
	}
	var objs []Object
	if err := g.db.WithContext(ctx).Where("parent = ?", p).Find(&objs).Error; err != nil {
		return nil, catalogErr(err)
	}

	entries := make([]store.Entry, 0, len(colls)+len(objs))
	for _, c := range colls {
		entries = append(entries, store.Entry{Path: c.Path, Kind: store.KindCollection})
	}
	for _, o := range objs {
		entries = append(entries, store.Entry{Path: o.Path, Kind: store.KindDataObject})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (g *Gateway) Metadata(ctx context.Context, p string) ([]store.AVU, error) {
	p = cleanPath(p)
	if err := g.requireItem(ctx, p); err != nil {
		return nil, err
	}

	var rows []Metadata
	if err := g.db.WithContext(ctx).Where("item_path = ?", p).Find(&rows).Error; err != nil {
		return nil, catalogErr(err)
	}
	avus := make([]store.AVU, 0, len(rows))
	for _, r := range rows {
		avus = append(avus, store.AVU{Attr: r.Attr, Value: r.Value, Units: r.Units})
	}
	return avus, nil
}

func (g *Gateway) Replicas(ctx context.Context, p string) ([]store.Replica, error) {
	p = cleanPath(p)
	if err := g.requireKind(ctx, p, store.KindDataObject); err != nil {
		return nil, err
	}

	rows, err := g.replicaRows(ctx, p)
	if err != nil {
		return nil, err
	}
	replicas := make([]store.Replica, 0, len(rows))
	for _, r := range rows {
		replicas = append(replicas, store.Replica{
			Number:   r.Number,
			Resource: r.Resource,
			Checksum: r.Checksum,
			Valid:    r.Valid,
			Created:  r.CreatedAt,
		})
	}
	return replicas, nil
}

func (g *Gateway) Permissions(ctx context.Context, p string) ([]store.Access, error) {
	p = cleanPath(p)
	if err := g.requireItem(ctx, p); err != nil {
		return nil, err
	}

	var rows []AccessEntry
	if err := g.db.WithContext(ctx).Where("item_path = ?", p).Find(&rows).Error; err != nil {
		return nil, catalogErr(err)
	}
	acl := make([]store.Access, 0, len(rows))
	for _, r := range rows {
		acl = append(acl, store.Access{User: r.UserName, Level: r.Level})
	}
	return acl, nil
}

func (g *Gateway) AddMetadata(ctx context.Context, p string, avus ...store.AVU) (int, error) {
	p = cleanPath(p)
	if err := g.requireItem(ctx, p); err != nil {
		return 0, err
	}

	added := 0
	for _, avu := range avus {
		var n int64
		q := g.db.WithContext(ctx).Model(&Metadata{}).
			Where("item_path = ? AND attr = ? AND value = ? AND units = ?", p, avu.Attr, avu.Value, avu.Units)
		if err := q.Count(&n).Error; err != nil {
			return added, catalogErr(err)
		}
		if n > 0 {
			continue
		}
		row := Metadata{ItemPath: p, Attr: avu.Attr, Value: avu.Value, Units: avu.Units}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			return added, catalogErr(err)
		}
		added++
	}
	return added, nil
}

func (g *Gateway) RemoveMetadata(ctx context.Context, p string, avus ...store.AVU) (int, error) {
	p = cleanPath(p)
	if err := g.requireItem(ctx, p); err != nil {
		return 0, err
	}

	removed := 0
	for _, avu := range avus {
		res := g.db.WithContext(ctx).
			Where("item_path = ? AND attr = ? AND value = ? AND units = ?", p, avu.Attr, avu.Value, avu.Units).
			Delete(&Metadata{})
		if res.Error != nil {
			return removed, catalogErr(res.Error)
		}
		removed += int(res.RowsAffected)
	}
	return removed, nil
}

func (g *Gateway) AddPermissions(ctx context.Context, p string, acl ...store.Access) (int, error) {
	p = cleanPath(p)
	if err := g.requireItem(ctx, p); err != nil {
		return 0, err
	}

	added := 0
	for _, ac := range acl {
		var n int64
		q := g.db.WithContext(ctx).Model(&AccessEntry{}).
			Where("item_path = ? AND user_name = ? AND level = ?", p, ac.User, ac.Level)
		if err := q.Count(&n).Error; err != nil {
			return added, catalogErr(err)
		}
		if n > 0 {
			continue
		}
		row := AccessEntry{ItemPath: p, UserName: ac.User, Level: ac.Level}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			return added, catalogErr(err)
		}
		added++
	}
	return added, nil
}

func (g *Gateway) TrimReplicas(ctx context.Context, p string, valid, invalid bool, keep int) (int, int, error) {
	p = cleanPath(p)
	rows, err := g.replicaRows(ctx, p)
	if err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, store.Errorf(store.CodeNotFound, "no such data object: %s", p)
	}

	nv, ni := 0, 0
	if valid {
		seen := 0
		for _, r := range rows {
			if !r.Valid {
				continue
			}
			seen++
			if seen <= keep {
				continue
			}
			if err := g.removeReplica(ctx, p, r); err != nil {
				return nv, ni, err
			}
			nv++
		}
	}
	if invalid {
		for _, r := range rows {
			if r.Valid {
				continue
			}
			if err := g.removeReplica(ctx, p, r); err != nil {
				return nv, ni, err
			}
			ni++
		}
	}
	return nv, ni, nil
}

func (g *Gateway) CreateCollection(ctx context.Context, p string, existOK bool) error {
	p = cleanPath(p)

	kind, err := g.Stat(ctx, p)
	if err != nil {
		return err
	}
	switch kind {
	case store.KindCollection:
		if existOK {
			return nil
		}
		return store.Errorf(store.CodeAlreadyExists, "collection already exists: %s", p)
	case store.KindDataObject:
		return store.Errorf(store.CodeAlreadyExists, "a data object exists at: %s", p)
	}

	row := Collection{Path: p, Parent: parentPath(p)}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return catalogErr(err)
	}
	return nil
}

func (g *Gateway) CopyObject(ctx context.Context, src, dest string, verify bool) error {
	src, dest = cleanPath(src), cleanPath(dest)

	rows, err := g.replicaRows(ctx, src)
	if err != nil {
		return err
	}
	source, ok := firstValid(rows)
	if !ok {
		return store.Errorf(store.CodeNotFound, "no valid replica to copy from: %s", src)
	}

	for _, bucket := range g.resources {
		etag, err := g.os.CopyObject(ctx, source.Resource, objectKey(src), bucket, objectKey(dest))
		if err != nil {
			return store.Errorf(store.CodeConnection, "copy to resource %s failed: %v", bucket, err)
		}
		if verify && source.Checksum != "" && etag != source.Checksum {
			return store.Errorf(store.CodeChecksumMismatch,
				"checksum verification failed copying %s to %s on %s: expected %s observed %s",
				src, dest, bucket, source.Checksum, etag)
		}
	}

	// Register the destination only after every resource copy verified.
	if err := g.db.WithContext(ctx).Where("object_path = ?", dest).Delete(&Replica{}).Error; err != nil {
		return catalogErr(err)
	}
	var n int64
	if err := g.db.WithContext(ctx).Model(&Object{}).Where("path = ?", dest).Count(&n).Error; err != nil {
		return catalogErr(err)
	}
	if n == 0 {
		obj := Object{Path: dest, Parent: parentPath(dest)}
		if err := g.db.WithContext(ctx).Create(&obj).Error; err != nil {
			return catalogErr(err)
		}
	}
	for i, bucket := range g.resources {
		row := Replica{ObjectPath: dest, Number: i, Resource: bucket, Checksum: source.Checksum, Valid: true}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			return catalogErr(err)
		}
	}
	return nil
}

func (g *Gateway) RemoveObject(ctx context.Context, p string) error {
	p = cleanPath(p)
	if err := g.requireKind(ctx, p, store.KindDataObject); err != nil {
		return err
	}

	rows, err := g.replicaRows(ctx, p)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := g.removeReplica(ctx, p, r); err != nil {
			return err
		}
	}
	return g.dropItemRows(ctx, p, &Object{})
}

func (g *Gateway) RemoveCollection(ctx context.Context, p string) error {
	p = cleanPath(p)
	if err := g.requireKind(ctx, p, store.KindCollection); err != nil {
		return err
	}

	var n int64
	if err := g.db.WithContext(ctx).Model(&Collection{}).Where("parent = ?", p).Count(&n).Error; err != nil {
		return catalogErr(err)
	}
	if n == 0 {
		if err := g.db.WithContext(ctx).Model(&Object{}).Where("parent = ?", p).Count(&n).Error; err != nil {
			return catalogErr(err)
		}
	}
	if n > 0 {
		return store.Errorf(store.CodeNotEmpty, "collection is not empty: %s", p)
	}
	return g.dropItemRows(ctx, p, &Collection{})
}

func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *Gateway) replicaRows(ctx context.Context, p string) ([]Replica, error) {
	var rows []Replica
	err := g.db.WithContext(ctx).Where("object_path = ?", p).Order("number").Find(&rows).Error
	if err != nil {
		return nil, catalogErr(err)
	}
	return rows, nil
}

// removeReplica deletes the bucket object first so a failure leaves the
// registry row behind for a retry, never an unregistered stray object.
func (g *Gateway) removeReplica(ctx context.Context, p string, r Replica) error {
	if err := g.os.RemoveObject(ctx, r.Resource, objectKey(p)); err != nil {
		return store.Errorf(store.CodeConnection, "failed to remove replica %d of %s on %s: %v",
			r.Number, p, r.Resource, err)
	}
	if err := g.db.WithContext(ctx).Where("id = ?", r.ID).Delete(&Replica{}).Error; err != nil {
		return catalogErr(err)
	}
	return nil
}

// dropItemRows deletes the item row plus its metadata and access entries.
func (g *Gateway) dropItemRows(ctx context.Context, p string, model any) error {
	if err := g.db.WithContext(ctx).Where("item_path = ?", p).Delete(&Metadata{}).Error; err != nil {
		return catalogErr(err)
	}
	if err := g.db.WithContext(ctx).Where("item_path = ?", p).Delete(&AccessEntry{}).Error; err != nil {
		return catalogErr(err)
	}
	if err := g.db.WithContext(ctx).Where("path = ?", p).Delete(model).Error; err != nil {
		return catalogErr(err)
	}
	return nil
}

func (g *Gateway) requireItem(ctx context.Context, p string) error {
	kind, err := g.Stat(ctx, p)
	if err != nil {
		return err
	}
	if kind == store.KindNone {
		return store.Errorf(store.CodeNotFound, "no such item: %s", p)
	}
	return nil
}

func (g *Gateway) requireKind(ctx context.Context, p string, want store.Kind) error {
	kind, err := g.Stat(ctx, p)
	if err != nil {
		return err
	}
	if kind == store.KindNone {
		return store.Errorf(store.CodeNotFound, "no such item: %s", p)
	}
	if kind != want {
		return store.Errorf(store.CodeNotFound, "%s is a %s, not a %s", p, kind, want)
	}
	return nil
}

func firstValid(rows []Replica) (Replica, bool) {
	for _, r := range rows {
		if r.Valid {
			return r, true
		}
	}
	return Replica{}, false
}

func cleanPath(p string) string {
	p = path.Clean(strings.TrimSpace(p))
	if p == "." {
		p = ""
	}
	return p
}

func parentPath(p string) string {
	return path.Dir(p)
}

// objectKey maps a grid path to the object key used in every resource
// bucket.
func objectKey(p string) string {
	return strings.TrimPrefix(p, "/")
}

func catalogErr(err error) error {
	return store.Errorf(store.CodeConnection, "catalog query failed: %v", err)
}
