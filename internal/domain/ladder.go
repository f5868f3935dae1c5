package domain

import "sort"

// ladder.go — vista de liquidez por lado, normalizada a tick y sin liquidez propia.
//
// El ladder es la base de toda la decisión de quoting: agrega el book por
// precio normalizado, descuenta las órdenes propias que están descansando en
// él, y permite resolver "¿a qué precio llego si barro N dólares?" sin que
// el bot compita contra su propia liquidez.

// Level es un nivel del ladder: precio y tamaño ajeno (sin el nuestro).
type Level struct {
	Price float64
	Size  float64
}

// Ladder es la secuencia de niveles de un lado del book, ordenada de mejor a
// peor precio (bids: descendente, asks: ascendente).
// Invariante: no hay precios repetidos ni niveles con Size <= 0.
type Ladder struct {
	Levels []Level
	IsBid  bool
}

// BuildLadder construye el ladder de un lado del book.
// Normaliza cada nivel al tick, agrega tamaños por precio, descuenta el
// tamaño propio (ownSizes, ya normalizado con SizesByPrice) y descarta los
// niveles cuyo residuo no es positivo.
// Un lado vacío del book produce un ladder vacío — no es un error, significa
// que no hay contraparte.
func BuildLadder(side []BookEntry, ownSizes map[float64]float64, tick float64, isBid bool) Ladder {
	aggregated := make(map[float64]float64, len(side))
	for _, entry := range side {
		if entry.Price <= 0 || entry.Size <= 0 {
			// niveles malformados de la API se descartan en el borde
			continue
		}
		price := NormalizePrice(entry.Price, tick)
		aggregated[price] += entry.Size
	}

	levels := make([]Level, 0, len(aggregated))
	for price, size := range aggregated {
		other := size - ownSizes[price]
		if other <= 0 {
			continue
		}
		levels = append(levels, Level{Price: price, Size: other})
	}

	sort.Slice(levels, func(i, j int) bool {
		if isBid {
			return levels[i].Price > levels[j].Price
		}
		return levels[i].Price < levels[j].Price
	})

	return Ladder{Levels: levels, IsBid: isBid}
}

// Empty devuelve true si el ladder no tiene niveles.
func (l Ladder) Empty() bool {
	return len(l.Levels) == 0
}

// BestPrice devuelve el mejor precio del ladder.
// Vacío: 0.0 para bids ("no hay comprador") y 1.0 para asks ("no hay
// vendedor") — los precios son probabilidades acotadas a [0,1].
func (l Ladder) BestPrice() float64 {
	if l.Empty() {
		if l.IsBid {
			return 0.0
		}
		return 1.0
	}
	return l.Levels[0].Price
}

// PriceForValue devuelve el precio al que el valor nocional acumulado
// (precio × tamaño, sumado desde el mejor nivel hacia adentro) alcanza o
// supera targetValue.
//
// Casos borde:
//   - ladder vacío → BestPrice degenerado (0.0 bid / 1.0 ask)
//   - targetValue <= 0 → mejor precio disponible
//   - el acumulado nunca llega a targetValue → peor precio disponible
//     (satura, no falla)
func (l Ladder) PriceForValue(targetValue float64) float64 {
	if l.Empty() {
		return l.BestPrice()
	}
	if targetValue <= 0 {
		return l.Levels[0].Price
	}

	cumulative := 0.0
	last := l.Levels[0].Price
	for _, lv := range l.Levels {
		last = lv.Price
		cumulative += lv.Price * lv.Size
		if cumulative >= targetValue {
			return lv.Price
		}
	}
	return last
}

// ValueToPrice suma el valor nocional desde el mejor nivel hacia adentro y
// se detiene (incluyendo el nivel que cruza) cuando un nivel alcanza
// priceLimit en la dirección desfavorable: <= limit para bids, >= limit
// para asks. Ladder vacío → 0.
func (l Ladder) ValueToPrice(priceLimit float64) float64 {
	cumulative := 0.0
	for _, lv := range l.Levels {
		cumulative += lv.Price * lv.Size
		if (l.IsBid && lv.Price <= priceLimit) || (!l.IsBid && lv.Price >= priceLimit) {
			break
		}
	}
	return cumulative
}
