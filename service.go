package currency

import "context"

type Service interface {
	Exchange(ctx context.Context, plan Plan) (bool, []FilteredDay)
}
