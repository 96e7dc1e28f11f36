package reservation

import "context"

// SeedDefaults cadastra os quartos 101..110 (tipos alternados) e dois clientes
// de demonstração, para que os clientes de linha de comando tenham com o que
// trabalhar logo após subir o servidor.
func SeedDefaults(ctx context.Context, r *Registry) error {
	kinds := []Kind{KindSingle, KindDouble, KindSuite}
	prices := map[Kind]float64{KindSingle: 100, KindDouble: 150, KindSuite: 500}

	for i := 0; i < 10; i++ {
		kind := kinds[i%len(kinds)]
		if err := r.AddResource(ctx, 101+i, kind, prices[kind]); err != nil {
			return err
		}
	}

	if err := r.AddRequester(ctx, 1, "Ada"); err != nil {
		return err
	}
	return r.AddRequester(ctx, 2, "Grace")
}
