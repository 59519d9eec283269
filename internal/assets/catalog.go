package assets

import "fmt"

// BitmapAsset names a bitmap shipped with the game.
type BitmapAsset uint8

const (
	BulletEnemy BitmapAsset = iota
	BulletPlayer
	Enemy1
	Enemy1Down1
	Enemy1Down2
	Enemy1Down3
	Enemy1Down4
	Enemy2
	Enemy2Hit
	Enemy2Down1
	Enemy2Down2
	Enemy2Down3
	Enemy2Down4
	Enemy3N1
	Enemy3N2
	Enemy3Hit
	Enemy3Down1
	Enemy3Down2
	Enemy3Down3
	Enemy3Down4
	Enemy3Down5
	Enemy3Down6
	Hero1
	Hero2

	numBitmapAssets
)

var bitmapFilenames = [numBitmapAssets]string{
	BulletEnemy:  "bullet_enemy.png",
	BulletPlayer: "bullet_player.png",
	Enemy1:       "enemy1.png",
	Enemy1Down1:  "enemy1_down1.png",
	Enemy1Down2:  "enemy1_down2.png",
	Enemy1Down3:  "enemy1_down3.png",
	Enemy1Down4:  "enemy1_down4.png",
	Enemy2:       "enemy2.png",
	Enemy2Hit:    "enemy2_hit.png",
	Enemy2Down1:  "enemy2_down1.png",
	Enemy2Down2:  "enemy2_down2.png",
	Enemy2Down3:  "enemy2_down3.png",
	Enemy2Down4:  "enemy2_down4.png",
	Enemy3N1:     "enemy3_n1.png",
	Enemy3N2:     "enemy3_n2.png",
	Enemy3Hit:    "enemy3_hit.png",
	Enemy3Down1:  "enemy3_down1.png",
	Enemy3Down2:  "enemy3_down2.png",
	Enemy3Down3:  "enemy3_down3.png",
	Enemy3Down4:  "enemy3_down4.png",
	Enemy3Down5:  "enemy3_down5.png",
	Enemy3Down6:  "enemy3_down6.png",
	Hero1:        "hero1.png",
	Hero2:        "hero2.png",
}

// Filename is the resource name to pass to the Loader.
func (a BitmapAsset) Filename() string {
	if a >= numBitmapAssets {
		return ""
	}
	return bitmapFilenames[a]
}

func (a BitmapAsset) String() string {
	if name := a.Filename(); name != "" {
		return name
	}
	return fmt.Sprintf("BitmapAsset(%d)", uint8(a))
}

// AllBitmapAssets lists every catalogued bitmap in declaration order.
func AllBitmapAssets() []BitmapAsset {
	out := make([]BitmapAsset, numBitmapAssets)
	for i := range out {
		out[i] = BitmapAsset(i)
	}
	return out
}
