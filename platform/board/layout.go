package board

import "github.com/blockopoly/blockopoly-backend/app/models"

// Canonical board layout: four corners with two or three properties per
// side, 14 blocks in total. The start corner is always position 0.

const (
	RestHousePayment = 50
	PartyHouseCost   = 50
)

var corners = []models.Block{
	{Name: "Start", ImageURL: "/images/start.png", Corner: true, Kind: models.CornerStartBonus},
	{Name: "Rest House", ImageURL: "/images/resthouse.png", Corner: true, Kind: models.CornerSkipTurnAndPay, Amount: RestHousePayment},
	{Name: "Jail", ImageURL: "/images/jail.png", Corner: true, Kind: models.CornerSendToJail},
	{Name: "Party House", ImageURL: "/images/partyhouse.png", Corner: true, Kind: models.CornerPayPenalty, Amount: PartyHouseCost},
}

var sides = [][]models.Block{
	{
		{Name: "Mediterranean Avenue", Price: 60, Rent: 10, ImageURL: "/images/mediterranean.png"},
		{Name: "Baltic Avenue", Price: 60, Rent: 10, ImageURL: "/images/baltic.png"},
		{Name: "Oriental Avenue", Price: 100, Rent: 15, ImageURL: "/images/oriental.png"},
	},
	{
		{Name: "Vermont Avenue", Price: 100, Rent: 15, ImageURL: "/images/vermont.png"},
		{Name: "Virginia Avenue", Price: 160, Rent: 25, ImageURL: "/images/virginia.png"},
	},
	{
		{Name: "St. James Place", Price: 180, Rent: 30, ImageURL: "/images/stjames.png"},
		{Name: "Tennessee Avenue", Price: 180, Rent: 30, ImageURL: "/images/tennessee.png"},
		{Name: "New York Avenue", Price: 200, Rent: 35, ImageURL: "/images/newyork.png"},
	},
	{
		{Name: "Kentucky Avenue", Price: 220, Rent: 40, ImageURL: "/images/kentucky.png"},
		{Name: "Marvin Gardens", Price: 280, Rent: 55, ImageURL: "/images/marvin.png"},
	},
}
