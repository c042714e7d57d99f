package repository

import (
	"context"
	"strconv"

	"github.com/segyhp/dealer-loans/internal/domain"
)

type dealershipRepository struct {
	tableRepository[domain.Dealership]
}

func NewDealershipRepository(store TableStore) DealershipRepository {
	return &dealershipRepository{tableRepository[domain.Dealership]{
		store: store,
		codec: codec[domain.Dealership]{
			table:  TableDealerships,
			entity: "dealership",
			key:    func(d domain.Dealership) int { return d.ID },
			encode: func(d domain.Dealership) (Record, error) {
				return Record{
					"dealership_id":   strconv.Itoa(d.ID),
					"name":            d.Name,
					"dealership_code": d.Code,
					"phone":           d.Phone,
				}, nil
			},
			decode: func(rec Record) (domain.Dealership, error) {
				id, err := atoi("dealership id", rec["dealership_id"])
				if err != nil {
					return domain.Dealership{}, err
				}
				return domain.NewDealership(id, rec["name"], rec["dealership_code"], rec["phone"])
			},
		},
	}}
}

func (r *dealershipRepository) LoadAll(ctx context.Context) ([]domain.Dealership, error) {
	return r.loadAll(ctx)
}

func (r *dealershipRepository) Get(ctx context.Context, id int) (domain.Dealership, error) {
	return r.get(ctx, id)
}

func (r *dealershipRepository) Insert(ctx context.Context, d domain.Dealership) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return r.insert(ctx, d)
}

func (r *dealershipRepository) Update(ctx context.Context, d domain.Dealership) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return r.update(ctx, d)
}
