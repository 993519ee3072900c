package catalog

import (
	"context"

	"carboquiz/internal/domain"
)

// Loader fetches the question catalog from a backing store.
type Loader interface {
	LoadCatalog(ctx context.Context) ([]domain.Question, error)
}

// StaticLoader serves a fixed catalog (the built-in questions, or test data).
type StaticLoader struct {
	questions []domain.Question
}

func NewStaticLoader(questions []domain.Question) *StaticLoader {
	return &StaticLoader{questions: questions}
}

func (l *StaticLoader) LoadCatalog(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return l.questions, nil
}

// Default returns the built-in question catalog. Question order is the
// presentation order. Option footprints are annual kg CO2e; the commute
// question is defined for a 10 km round trip and is scaled by the player's
// distance before the answer is stored.
func Default() []domain.Question {
	return []domain.Question{
		{
			ID:               1,
			Text:             "How do you usually commute to work or school?",
			RequiresDistance: true,
			Options: []domain.Option{
				{ID: 1, Text: "Walk or cycle", CarbonFootprint: 0, TreeEquivalent: 0, Rank: 1,
					Performance: "Zero-emission travel, as good as it gets.",
					Explanation: "Active travel produces no direct emissions and replaces the highest-impact trips."},
				{ID: 2, Text: "Electric scooter or e-bike", CarbonFootprint: 30, TreeEquivalent: 2, Rank: 2,
					Performance: "Very low impact per kilometre.",
					Improvement: "Charge from a renewable tariff to shrink this further.",
					Explanation: "Light electric vehicles use a fraction of the energy of a car."},
				{ID: 3, Text: "Bus or train", CarbonFootprint: 80, TreeEquivalent: 4, Rank: 3,
					Performance: "Shared transport keeps per-person emissions low.",
					Improvement: "Off-peak services run fuller and cleaner per passenger.",
					Explanation: "Public transport spreads one vehicle's emissions across many riders."},
				{ID: 4, Text: "Carpool with others", CarbonFootprint: 150, TreeEquivalent: 8, Rank: 4,
					Performance: "Better than driving alone, still car-based.",
					Improvement: "Try mixing in one or two transit days a week.",
					Explanation: "Sharing a car halves or thirds the per-person footprint of the trip."},
				{ID: 5, Text: "Petrol or diesel car, alone", CarbonFootprint: 300, TreeEquivalent: 15, Rank: 5,
					Performance: "A solo fossil-fuel commute adds up quickly.",
					Improvement: "Carpooling or one train day a week makes a real dent.",
					Explanation: "A typical car emits roughly 120g CO2e per passenger-kilometre when driven alone."},
				{ID: 6, Text: "Motorbike or taxi", CarbonFootprint: 380, TreeEquivalent: 19, Rank: 6,
					Performance: "Among the highest-impact daily commutes.",
					Improvement: "Swap even a few trips for public transport.",
					Explanation: "Taxis add empty repositioning miles on top of the ride itself."},
			},
		},
		{
			ID:   2,
			Text: "Which best describes your diet?",
			Options: []domain.Option{
				{ID: 1, Text: "Fully plant-based", CarbonFootprint: 50, TreeEquivalent: 3, Rank: 1,
					Performance: "The lowest-carbon way to eat.",
					Explanation: "Plant foods need far less land and energy than animal products."},
				{ID: 2, Text: "Vegetarian with dairy", CarbonFootprint: 400, TreeEquivalent: 20, Rank: 2,
					Performance: "A strong choice with room to improve.",
					Improvement: "Dairy is the heavy hitter here; plant milks cut it fast.",
					Explanation: "Cheese and milk carry most of a vegetarian diet's footprint."},
				{ID: 3, Text: "Pescatarian", CarbonFootprint: 600, TreeEquivalent: 30, Rank: 3,
					Performance: "Moderate impact, depends on the fish.",
					Improvement: "Favour small wild-caught fish over farmed salmon and prawns.",
					Explanation: "Fishing and aquaculture vary widely in fuel and feed intensity."},
				{ID: 4, Text: "Meat a few times a week", CarbonFootprint: 900, TreeEquivalent: 45, Rank: 4,
					Performance: "Below average for a meat eater.",
					Improvement: "Swapping beef for chicken or beans halves meat-day emissions.",
					Explanation: "Frequency and type of meat dominate dietary footprints."},
				{ID: 5, Text: "Meat most days", CarbonFootprint: 1500, TreeEquivalent: 75, Rank: 5,
					Performance: "A significant share of your total footprint.",
					Improvement: "Start with one or two plant-based days a week.",
					Explanation: "Daily meat roughly doubles the footprint of a plant-forward diet."},
				{ID: 6, Text: "Meat at every meal", CarbonFootprint: 2500, TreeEquivalent: 125, Rank: 6,
					Performance: "The highest-impact diet pattern.",
					Improvement: "Reducing red meat alone would cut this dramatically.",
					Explanation: "Beef and lamb emit over 20x more per kilogram than legumes."},
			},
		},
		{
			ID:   3,
			Text: "How is your home powered and heated?",
			Options: []domain.Option{
				{ID: 1, Text: "Certified renewable electricity plan", CarbonFootprint: 50, TreeEquivalent: 3, Rank: 1,
					Performance: "Your home runs nearly carbon-free.",
					Explanation: "A verified renewable tariff removes most household energy emissions."},
				{ID: 2, Text: "Solar panels with grid backup", CarbonFootprint: 200, TreeEquivalent: 10, Rank: 2,
					Performance: "Mostly clean, with a small grid remainder.",
					Improvement: "A home battery can push self-consumption above 80%.",
					Explanation: "Rooftop solar covers daytime load; the grid fills the gaps."},
				{ID: 3, Text: "Standard grid, well-insulated home", CarbonFootprint: 800, TreeEquivalent: 40, Rank: 3,
					Performance: "Efficiency keeps a fossil grid bill modest.",
					Improvement: "A green tariff switch is a one-click cut here.",
					Explanation: "Insulation reduces demand even when the supply is dirty."},
				{ID: 4, Text: "Standard grid mix", CarbonFootprint: 1500, TreeEquivalent: 75, Rank: 4,
					Performance: "Average household energy footprint.",
					Improvement: "Draught-proofing and a thermostat schedule pay back within a year.",
					Explanation: "The average grid unit still comes mostly from gas and coal."},
				{ID: 5, Text: "Gas heating, little insulation", CarbonFootprint: 2200, TreeEquivalent: 110, Rank: 5,
					Performance: "Heat is leaking money and carbon.",
					Improvement: "Loft insulation is the cheapest big win in this quiz.",
					Explanation: "Uninsulated homes can lose a third of their heat through the roof."},
				{ID: 6, Text: "Oil or coal heating", CarbonFootprint: 3000, TreeEquivalent: 150, Rank: 6,
					Performance: "The most carbon-intensive way to heat a home.",
					Improvement: "A heat pump would cut this by more than half.",
					Explanation: "Oil and coal emit more CO2 per unit of heat than any alternative."},
			},
		},
		{
			ID:   4,
			Text: "How would you describe your shopping habits?",
			Options: []domain.Option{
				{ID: 1, Text: "Second-hand almost always", CarbonFootprint: 10, TreeEquivalent: 1, Rank: 1,
					Performance: "Reuse beats recycling every time.",
					Explanation: "Buying used avoids the manufacturing footprint entirely."},
				{ID: 2, Text: "Repair before replacing", CarbonFootprint: 40, TreeEquivalent: 2, Rank: 2,
					Performance: "Keeping things in use is a quiet superpower.",
					Improvement: "Pair repairs with second-hand buys for near-zero impact.",
					Explanation: "Extending a product's life defers the emissions of its replacement."},
				{ID: 3, Text: "A few new items each season", CarbonFootprint: 120, TreeEquivalent: 6, Rank: 3,
					Performance: "Measured buying, moderate footprint.",
					Improvement: "Choosing durable brands stretches each purchase further.",
					Explanation: "Most of a garment's footprint is locked in at manufacture."},
				{ID: 4, Text: "Regular online shopping", CarbonFootprint: 300, TreeEquivalent: 15, Rank: 4,
					Performance: "Convenience is stacking up emissions.",
					Improvement: "Batch orders and avoid rush shipping.",
					Explanation: "Frequent small deliveries multiply packaging and transport."},
				{ID: 5, Text: "Fast fashion every month", CarbonFootprint: 600, TreeEquivalent: 30, Rank: 5,
					Performance: "High-turnover wardrobes carry a heavy cost.",
					Improvement: "Halving new purchases halves this line of your footprint.",
					Explanation: "Fast fashion is produced, shipped and discarded at high volume."},
				{ID: 6, Text: "Next-day delivery for everything", CarbonFootprint: 900, TreeEquivalent: 45, Rank: 6,
					Performance: "The most carbon-intensive way to shop.",
					Improvement: "Standard shipping lets carriers consolidate loads.",
					Explanation: "Express logistics run vans and planes below capacity."},
			},
		},
		{
			ID:   5,
			Text: "What happens to your household waste?",
			Options: []domain.Option{
				{ID: 1, Text: "Compost and recycle nearly everything", CarbonFootprint: 10, TreeEquivalent: 1, Rank: 1,
					Performance: "Almost nothing goes to landfill.",
					Explanation: "Composting avoids methane, recycling avoids virgin production."},
				{ID: 2, Text: "Recycle most packaging", CarbonFootprint: 50, TreeEquivalent: 3, Rank: 2,
					Performance: "Good habits with a little left on the table.",
					Improvement: "Adding food-waste composting removes the worst landfill emissions.",
					Explanation: "Food in landfill produces methane, a far stronger gas than CO2."},
				{ID: 3, Text: "Recycle when convenient", CarbonFootprint: 150, TreeEquivalent: 8, Rank: 3,
					Performance: "Mixed results, mixed bins.",
					Improvement: "A second bin by the kitchen doubles recycling rates.",
					Explanation: "Convenience is the main predictor of household recycling."},
				{ID: 4, Text: "Mostly general waste", CarbonFootprint: 300, TreeEquivalent: 15, Rank: 4,
					Performance: "Most of your waste is buried or burned.",
					Improvement: "Start with paper and glass; they are the easiest wins.",
					Explanation: "Landfilled materials must be replaced from virgin sources."},
				{ID: 5, Text: "Everything in one bin", CarbonFootprint: 450, TreeEquivalent: 23, Rank: 5,
					Performance: "No sorting means maximum landfill.",
					Improvement: "Separating just food waste cuts landfill methane sharply.",
					Explanation: "Unsorted waste contaminates recyclable streams too."},
				{ID: 6, Text: "Frequent single-use items", CarbonFootprint: 600, TreeEquivalent: 30, Rank: 6,
					Performance: "Disposables dominate this footprint.",
					Improvement: "A reusable bottle and cup eliminate hundreds of items a year.",
					Explanation: "Single-use goods concentrate manufacturing emissions into minutes of use."},
			},
		},
		{
			ID:   6,
			Text: "How do you use water at home?",
			Options: []domain.Option{
				{ID: 1, Text: "Short showers, full loads only", CarbonFootprint: 10, TreeEquivalent: 1, Rank: 1,
					Performance: "Lean water habits, tiny footprint.",
					Explanation: "Most water-related emissions come from heating it."},
				{ID: 2, Text: "Low-flow fixtures throughout", CarbonFootprint: 40, TreeEquivalent: 2, Rank: 2,
					Performance: "Hardware is doing the saving for you.",
					Improvement: "Shorter showers stack with the fixtures you already have.",
					Explanation: "Aerated fittings cut hot-water demand by up to half."},
				{ID: 3, Text: "Average household use", CarbonFootprint: 100, TreeEquivalent: 5, Rank: 3,
					Performance: "Typical use, typical footprint.",
					Improvement: "A shower timer is a cheap way to trim heating energy.",
					Explanation: "Water heating is a steady background load in most homes."},
				{ID: 4, Text: "Daily long showers", CarbonFootprint: 200, TreeEquivalent: 10, Rank: 4,
					Performance: "Hot water is a bigger line item than you'd think.",
					Improvement: "Cutting two minutes per shower saves real energy.",
					Explanation: "A ten-minute hot shower uses as much energy as hours of lighting."},
				{ID: 5, Text: "Regular baths", CarbonFootprint: 300, TreeEquivalent: 15, Rank: 5,
					Performance: "Baths use several showers' worth of hot water.",
					Improvement: "Swapping half your baths for showers is an easy cut.",
					Explanation: "A full bath holds 80-150 litres of heated water."},
				{ID: 6, Text: "Heated pool or hot tub", CarbonFootprint: 500, TreeEquivalent: 25, Rank: 6,
					Performance: "Continuous heating dominates your water footprint.",
					Improvement: "A cover and a lower setpoint cut standing losses substantially.",
					Explanation: "Keeping water hot around the clock consumes energy constantly."},
			},
		},
		{
			ID:   7,
			Text: "How often do you replace your electronic devices?",
			Options: []domain.Option{
				{ID: 1, Text: "I keep devices five years or more", CarbonFootprint: 1, TreeEquivalent: 0, Rank: 1,
					Performance: "Maximum lifetime, minimum footprint.",
					Explanation: "Nearly all of a device's emissions happen at manufacture."},
				{ID: 2, Text: "Refurbished when I upgrade", CarbonFootprint: 20, TreeEquivalent: 1, Rank: 2,
					Performance: "Second-life devices skip the factory.",
					Improvement: "Selling or passing on your old device completes the loop.",
					Explanation: "Refurbished hardware reuses the embodied carbon already spent."},
				{ID: 3, Text: "Upgrade every three years", CarbonFootprint: 80, TreeEquivalent: 4, Rank: 3,
					Performance: "A middling replacement cycle.",
					Improvement: "One extra year per device cuts this by a quarter.",
					Explanation: "Stretching the cycle dilutes manufacturing emissions over more use."},
				{ID: 4, Text: "New phone every two years", CarbonFootprint: 150, TreeEquivalent: 8, Rank: 4,
					Performance: "Contract-cycle upgrading shows in your total.",
					Improvement: "Battery replacements beat full upgrades.",
					Explanation: "A new smartphone embodies 50-80 kg of CO2e before first use."},
				{ID: 5, Text: "Latest gadgets every year", CarbonFootprint: 300, TreeEquivalent: 15, Rank: 5,
					Performance: "Annual upgrades carry a factory's worth of carbon.",
					Improvement: "Skipping every other generation halves this immediately.",
					Explanation: "Yearly cycles mean a steady stream of mined and shipped materials."},
				{ID: 6, Text: "Multiple new devices a year", CarbonFootprint: 500, TreeEquivalent: 25, Rank: 6,
					Performance: "The heaviest electronics footprint in this quiz.",
					Improvement: "Consolidating onto fewer devices is the biggest lever.",
					Explanation: "Every additional device repeats the manufacturing bill."},
			},
		},
		{
			ID:   8,
			Text: "How often do you fly in a typical year?",
			Options: []domain.Option{
				{ID: 1, Text: "No flights in a typical year", CarbonFootprint: 10, TreeEquivalent: 1, Rank: 1,
					Performance: "Staying grounded keeps this near zero.",
					Explanation: "Aviation is the fastest way to grow a personal footprint."},
				{ID: 2, Text: "One short-haul return", CarbonFootprint: 250, TreeEquivalent: 13, Rank: 2,
					Performance: "A single trip, clearly visible in your total.",
					Improvement: "Trains beat planes on most short-haul routes.",
					Explanation: "Take-off and landing make short flights disproportionately intensive."},
				{ID: 3, Text: "Two or three short-haul trips", CarbonFootprint: 600, TreeEquivalent: 30, Rank: 3,
					Performance: "Occasional flying, noticeable impact.",
					Improvement: "Combining trips or going by rail once makes a difference.",
					Explanation: "Each return short-haul flight adds roughly 200-300 kg CO2e."},
				{ID: 4, Text: "One long-haul return", CarbonFootprint: 1000, TreeEquivalent: 50, Rank: 4,
					Performance: "One long-haul rivals months of driving.",
					Improvement: "Fewer, longer stays beat frequent short visits.",
					Explanation: "A transatlantic return emits about a tonne per passenger."},
				{ID: 5, Text: "Several long-haul trips", CarbonFootprint: 2000, TreeEquivalent: 100, Rank: 5,
					Performance: "Flying is likely your single largest category.",
					Improvement: "Dropping one long-haul trip is the biggest cut available to you.",
					Explanation: "Long-haul aviation compounds fuel burn with high-altitude effects."},
				{ID: 6, Text: "I fly monthly", CarbonFootprint: 3500, TreeEquivalent: 175, Rank: 6,
					Performance: "A frequent-flyer footprint, far above average.",
					Improvement: "Replacing even a quarter of flights with rail or video calls helps.",
					Explanation: "Monthly flying can exceed an entire average annual footprint."},
			},
		},
		{
			ID:   9,
			Text: "How do you run your laundry and appliances?",
			Options: []domain.Option{
				{ID: 1, Text: "Cold wash and line dry", CarbonFootprint: 10, TreeEquivalent: 1, Rank: 1,
					Performance: "The lowest-energy laundry routine.",
					Explanation: "Heating water and air accounts for 90% of laundry energy."},
				{ID: 2, Text: "Efficient appliances, full loads", CarbonFootprint: 40, TreeEquivalent: 2, Rank: 2,
					Performance: "Modern machines used well.",
					Improvement: "Dropping wash temperature to 30C trims the remainder.",
					Explanation: "Full loads spread each cycle's energy across more clothes."},
				{ID: 3, Text: "Tumble dry sometimes", CarbonFootprint: 120, TreeEquivalent: 6, Rank: 3,
					Performance: "Occasional drying keeps this moderate.",
					Improvement: "A drying rack near a radiator covers most loads for free.",
					Explanation: "A tumble dryer is among the hungriest household appliances."},
				{ID: 4, Text: "Tumble dry most loads", CarbonFootprint: 250, TreeEquivalent: 13, Rank: 4,
					Performance: "Routine drying is a steady energy drain.",
					Improvement: "Line drying half your loads halves this figure.",
					Explanation: "Each dryer cycle uses 2-4 kWh of electricity."},
				{ID: 5, Text: "Old appliances, daily use", CarbonFootprint: 400, TreeEquivalent: 20, Rank: 5,
					Performance: "Ageing machines waste energy on every cycle.",
					Improvement: "An efficient replacement often pays for itself in two years.",
					Explanation: "Pre-2010 appliances can use twice the energy of current models."},
				{ID: 6, Text: "Heated drying plus dishwasher daily", CarbonFootprint: 550, TreeEquivalent: 28, Rank: 6,
					Performance: "Every hot cycle, every day, adds up.",
					Improvement: "Eco modes and fewer half-loads are immediate wins.",
					Explanation: "Stacked daily hot cycles dominate household appliance energy."},
			},
		},
		{
			ID:   10,
			Text: "What does your free time usually look like?",
			Options: []domain.Option{
				{ID: 1, Text: "Outdoor and community activities", CarbonFootprint: 5, TreeEquivalent: 0, Rank: 1,
					Performance: "Low-carbon leisure by default.",
					Explanation: "Time outdoors needs little more energy than getting there."},
				{ID: 2, Text: "Occasional streaming", CarbonFootprint: 30, TreeEquivalent: 2, Rank: 2,
					Performance: "A modest digital footprint.",
					Improvement: "Standard definition on small screens uses a fraction of the data.",
					Explanation: "Streaming emissions come mostly from networks and data centres."},
				{ID: 3, Text: "Daily streaming", CarbonFootprint: 80, TreeEquivalent: 4, Rank: 3,
					Performance: "Steady screen time, steady emissions.",
					Improvement: "Wi-Fi beats mobile data for the same stream.",
					Explanation: "Hours of daily video add up across the year."},
				{ID: 4, Text: "Gaming rig most evenings", CarbonFootprint: 150, TreeEquivalent: 8, Rank: 4,
					Performance: "High-end hardware draws real power.",
					Improvement: "Frame caps and sleep settings cut idle draw sharply.",
					Explanation: "A gaming PC can draw 300-500W at full tilt."},
				{ID: 5, Text: "Multiple screens running", CarbonFootprint: 250, TreeEquivalent: 13, Rank: 5,
					Performance: "Background screens burn energy unwatched.",
					Improvement: "Switching off idle screens is the easiest cut in this quiz.",
					Explanation: "Devices left running consume power whether or not anyone watches."},
				{ID: 6, Text: "Frequent driving for leisure", CarbonFootprint: 400, TreeEquivalent: 20, Rank: 6,
					Performance: "Leisure miles rival commuting miles.",
					Improvement: "Closer destinations or shared rides reduce this quickly.",
					Explanation: "Weekend driving is often the forgotten half of car emissions."},
			},
		},
	}
}
